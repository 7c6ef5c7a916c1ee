package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/moojink/RDBMS/internal/logger"
	"github.com/moojink/RDBMS/pkg/sql"
)

// SplitStatements splits script text into commands on semicolons outside
// quoted literals. Lines starting with "--" are comments.
func SplitStatements(script string) []string {
	var kept []string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	var stmts []string
	for _, s := range sql.SplitOutside(strings.Join(kept, "\n"), ";") {
		if s = strings.TrimSpace(s); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// completeStatements splits buffered shell input into the commands ended
// by a ';' outside quoted literals and the unterminated rest.
func completeStatements(input string) (cmds []string, rest string) {
	parts := sql.SplitOutside(input, ";")
	for _, p := range parts[:len(parts)-1] {
		if p = strings.TrimSpace(p); p != "" {
			cmds = append(cmds, p)
		}
	}
	return cmds, strings.TrimSpace(parts[len(parts)-1])
}

// Runner executes commands without a terminal, for scripts and one-shot
// invocations.
type Runner struct {
	session *sql.Session
	out     io.Writer
	display string
	log     *logger.Logger
}

// NewRunner creates a Runner printing results to out in the given display mode.
func NewRunner(session *sql.Session, out io.Writer, display string, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNop()
	}
	return &Runner{session: session, out: out, display: display, log: log.Named("runner")}
}

// Run executes each command in order and returns how many failed. A
// failing command does not stop the ones after it.
func (r *Runner) Run(cmds []string) (int, error) {
	failed := 0
	for _, cmd := range cmds {
		res, err := r.session.ExecuteSQL(cmd)
		if err != nil {
			failed++
			if _, werr := fmt.Fprintln(r.out, sql.FormatError(err)); werr != nil {
				return failed, werr
			}
			continue
		}
		if res.Table != nil {
			if err := render(r.out, res.Table, r.display); err != nil {
				return failed, err
			}
		}
	}
	r.log.Debug("script finished", "commands", len(cmds), "failed", failed)
	return failed, nil
}

// RunScript reads src fully and runs its statements.
func (r *Runner) RunScript(src io.Reader) (int, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return 0, fmt.Errorf("read script: %w", err)
	}
	return r.Run(SplitStatements(string(data)))
}
