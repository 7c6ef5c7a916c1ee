package sql

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/moojink/RDBMS/internal/logger"
	"github.com/moojink/RDBMS/pkg/catalog"
	"github.com/moojink/RDBMS/pkg/storage"
)

// Session evaluates commands one at a time against a catalog.
type Session struct {
	cat      *catalog.Catalog
	executor *Executor
	log      *logger.Logger
}

// NewSession creates a new session. A nil log disables logging.
func NewSession(cat *catalog.Catalog, log *logger.Logger) *Session {
	if log == nil {
		log = logger.NewNop()
	}
	return &Session{
		cat:      cat,
		executor: NewExecutor(cat),
		log:      log.Named("session"),
	}
}

// Catalog returns the catalog the session runs against.
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

// ExecuteSQL parses and executes one command.
func (s *Session) ExecuteSQL(input string) (*Result, error) {
	start := time.Now()
	stmt, err := Parse(input)
	if err != nil {
		s.log.Warn("parse failed", "command", input, "error", err)
		return nil, err
	}
	res, err := s.executor.Execute(stmt)
	if err != nil {
		s.log.Warn("command failed", "kind", stmt.Kind(), "command", input, "error", err)
		return nil, err
	}
	s.log.Debug("command done",
		"kind", stmt.Kind(),
		"rows", res.RowsAffected,
		"duration", time.Since(start),
	)
	return res, nil
}

// Transact evaluates one command and returns its printable outcome: the
// rendered table for print and select, an empty string for other
// successful commands, or a message starting with "ERROR:".
func (s *Session) Transact(input string) string {
	res, err := s.ExecuteSQL(input)
	if err != nil {
		return FormatError(err)
	}
	return res.String()
}

// FormatError renders err as a user-facing ERROR line.
func FormatError(err error) string {
	msg := upperFirst(err.Error())
	if errors.Is(err, storage.ErrTableFileNotFound) {
		if _, file, ok := strings.Cut(err.Error(), ": "); ok {
			msg = file + " not found."
		}
	}
	return fmt.Sprintf("ERROR: %s", msg)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
