// Package cli provides the interactive shell and script runner for rdbms.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/moojink/RDBMS/internal/config"
	"github.com/moojink/RDBMS/internal/logger"
	"github.com/moojink/RDBMS/pkg/sql"
)

// Version is reported by the banner and the version command.
const Version = "0.1.0"

// REPL implements the Read-Eval-Print Loop over one Session.
type REPL struct {
	config  *config.Config
	session *sql.Session
	log     *logger.Logger
	out     io.Writer
	display string
	id      string
	rl      *readline.Instance
}

// NewREPL creates a new REPL instance writing to stdout.
func NewREPL(cfg *config.Config, session *sql.Session, log *logger.Logger) *REPL {
	return newREPL(cfg, session, log, os.Stdout)
}

func newREPL(cfg *config.Config, session *sql.Session, log *logger.Logger, out io.Writer) *REPL {
	if log == nil {
		log = logger.NewNop()
	}
	id := uuid.NewString()
	return &REPL{
		config:  cfg,
		session: session,
		log:     log.Named("repl").With("session", id),
		out:     out,
		display: cfg.Shell.Display,
		id:      id,
	}
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.config.Shell.Prompt,
		HistoryFile:     r.config.Shell.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    newCompleter(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	r.log.Info("shell started", "data_dir", r.config.Storage.DataDir)
	defer r.log.Info("shell stopped")
	r.printWelcome()

	var buf strings.Builder
	for {
		if buf.Len() > 0 {
			rl.SetPrompt(strings.Repeat(" ", max(len(r.config.Shell.Prompt)-3, 0)) + "-> ")
		} else {
			rl.SetPrompt(r.config.Shell.Prompt)
		}

		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if buf.Len() > 0 {
				buf.Reset()
				fmt.Fprintln(r.out, "^C")
			}
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(r.out, "\nGoodbye!")
			return nil
		case err != nil:
			return fmt.Errorf("readline error: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// backslash commands run immediately; everything else waits for ';'
		if buf.Len() == 0 && strings.HasPrefix(line, "\\") {
			if r.processCommand(line) == commandExit {
				fmt.Fprintln(r.out, "Goodbye!")
				return nil
			}
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(line)
		if r.runBuffered(&buf) == commandExit {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
	}
}

// runBuffered runs every ';'-terminated command in buf and leaves the
// unterminated remainder for the next line.
func (r *REPL) runBuffered(buf *strings.Builder) commandResult {
	cmds, rest := completeStatements(buf.String())
	buf.Reset()
	buf.WriteString(rest)
	for _, cmd := range cmds {
		if r.processCommand(cmd) == commandExit {
			return commandExit
		}
	}
	return commandOK
}

type commandResult int

const (
	commandOK commandResult = iota
	commandExit
	commandError
)

func (r *REPL) processCommand(input string) commandResult {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "\\") {
		return r.handleBackslashCommand(input)
	}

	switch strings.ToLower(input) {
	case "":
		return commandOK
	case "exit", "quit":
		return commandExit
	case "help":
		r.printHelp()
		return commandOK
	}
	return r.execute(input)
}

// execute runs one engine command and prints its outcome.
func (r *REPL) execute(input string) commandResult {
	res, err := r.session.ExecuteSQL(input)
	if err != nil {
		fmt.Fprintln(r.out, sql.FormatError(err))
		return commandError
	}
	if res.Table != nil {
		if err := render(r.out, res.Table, r.display); err != nil {
			fmt.Fprintln(r.out, sql.FormatError(err))
			return commandError
		}
	}
	return commandOK
}

func (r *REPL) handleBackslashCommand(input string) commandResult {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return commandOK
	}

	switch cmd := strings.ToLower(parts[0]); cmd {
	case "\\q", "\\quit", "\\exit":
		return commandExit

	case "\\?", "\\help":
		r.printHelp()
		return commandOK

	case "\\dt", "\\tables":
		return r.listTables()

	case "\\d":
		if len(parts) != 2 {
			fmt.Fprintln(r.out, "Usage: \\d <table_name>")
			return commandError
		}
		return r.describeTable(parts[1])

	case "\\display":
		if len(parts) == 1 {
			fmt.Fprintf(r.out, "Display mode is %s\n", r.display)
			return commandOK
		}
		switch parts[1] {
		case "csv", "table":
			r.display = parts[1]
			fmt.Fprintf(r.out, "Display mode is now %s\n", r.display)
			return commandOK
		default:
			fmt.Fprintln(r.out, "Usage: \\display csv|table")
			return commandError
		}

	case "\\status":
		r.printStatus()
		return commandOK

	case "\\config":
		r.printConfig()
		return commandOK

	case "\\clear":
		fmt.Fprint(r.out, "\033[H\033[2J")
		return commandOK

	default:
		fmt.Fprintf(r.out, "Unknown command: %s\n", cmd)
		fmt.Fprintln(r.out, "Type \\? for help")
		return commandError
	}
}

func (r *REPL) listTables() commandResult {
	cat := r.session.Catalog()
	stored, err := cat.Stored()
	if err != nil {
		fmt.Fprintln(r.out, sql.FormatError(err))
		return commandError
	}
	rows := make([][]string, 0, len(stored))
	for _, name := range cat.Names() {
		t, _ := cat.Get(name)
		rows = append(rows, []string{name, "loaded", fmt.Sprint(t.NumRows())})
	}
	for _, name := range stored {
		if !cat.Has(name) {
			rows = append(rows, []string{name, "on disk", ""})
		}
	}
	if len(rows) == 0 {
		fmt.Fprintln(r.out, "No tables.")
		return commandOK
	}
	renderGrid(r.out, []string{"Name", "State", "Rows"}, rows)
	return commandOK
}

func (r *REPL) describeTable(name string) commandResult {
	t, err := r.session.Catalog().Get(name)
	if err != nil {
		fmt.Fprintln(r.out, sql.FormatError(err))
		return commandError
	}
	cols := t.Columns()
	rows := make([][]string, len(cols))
	for i, c := range cols {
		rows[i] = []string{c.Name, c.Type.String()}
	}
	renderGrid(r.out, []string{"Column", "Type"}, rows)
	return commandOK
}

func (r *REPL) printWelcome() {
	fmt.Fprintf(r.out, "rdbms %s\nType help; or \\? for available commands\n\n", Version)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, `
Commands
========
  create table T (col type, ...)          Create an empty table (types: string, int, float)
  create table T as select ...            Create a table from a query
  load T                                  Read T from T.tbl
  store T                                 Write T to T.tbl
  drop table T                            Remove T from memory
  insert into T values v1,v2,...          Append a row
  print T                                 Show a table
  select e1,... from T1,... [where ...]   Query, joining tables on shared columns

Backslash Commands:
  \dt, \tables                            List tables
  \d <table>                              Describe a table
  \display [csv|table]                    Show or set the result display mode
  \status                                 Show session status
  \config                                 Show configuration
  \clear                                  Clear screen
  \?, \help                               Show this help
  \q, \quit                               Exit

Note: Commands must end with ; (semicolon)
      Backslash commands do not need ;`)
}

func (r *REPL) printStatus() {
	fmt.Fprintln(r.out, "\nSession Status")
	fmt.Fprintln(r.out, "==============")
	fmt.Fprintf(r.out, "Version:    %s\n", Version)
	fmt.Fprintf(r.out, "Session:    %s\n", r.id)
	fmt.Fprintf(r.out, "Data Dir:   %s\n", r.session.Catalog().DataDir())
	fmt.Fprintf(r.out, "Tables:     %d loaded\n", len(r.session.Catalog().Names()))
	fmt.Fprintf(r.out, "Display:    %s\n", r.display)
	fmt.Fprintln(r.out)
}

func (r *REPL) printConfig() {
	fmt.Fprintln(r.out, "\nCurrent Configuration")
	fmt.Fprintln(r.out, "=====================")
	fmt.Fprintf(r.out, "Storage:\n")
	fmt.Fprintf(r.out, "  Data Directory:   %s\n", r.config.Storage.DataDir)
	fmt.Fprintf(r.out, "\nLogging:\n")
	fmt.Fprintf(r.out, "  Level:            %s\n", r.config.Log.Level)
	fmt.Fprintf(r.out, "  Format:           %s\n", r.config.Log.Format)
	fmt.Fprintf(r.out, "  Output:           %s\n", r.config.Log.Output)
	fmt.Fprintf(r.out, "\nShell:\n")
	fmt.Fprintf(r.out, "  Prompt:           %q\n", r.config.Shell.Prompt)
	fmt.Fprintf(r.out, "  History File:     %s\n", r.config.Shell.HistoryFile)
	fmt.Fprintf(r.out, "  Display:          %s\n", r.config.Shell.Display)
	fmt.Fprintln(r.out)
}

// newCompleter creates an auto-completer for the REPL.
func newCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("create",
			readline.PcItem("table"),
		),
		readline.PcItem("drop",
			readline.PcItem("table"),
		),
		readline.PcItem("insert",
			readline.PcItem("into"),
		),
		readline.PcItem("load"),
		readline.PcItem("store"),
		readline.PcItem("print"),
		readline.PcItem("select"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
		readline.PcItem("\\dt"),
		readline.PcItem("\\d"),
		readline.PcItem("\\display",
			readline.PcItem("csv"),
			readline.PcItem("table"),
		),
		readline.PcItem("\\status"),
		readline.PcItem("\\config"),
		readline.PcItem("\\clear"),
		readline.PcItem("\\help"),
		readline.PcItem("\\q"),
	)
}
