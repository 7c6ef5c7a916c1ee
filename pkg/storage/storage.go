// Package storage reads and writes tables as .tbl text files.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extension is the file suffix of a stored table.
const Extension = ".tbl"

// ErrTableFileNotFound is returned when no .tbl file exists for a table.
var ErrTableFileNotFound = errors.New("table file not found")

// ErrEmptyTableFile is returned when a .tbl file has no header line.
var ErrEmptyTableFile = errors.New("table file has no header")

// FileStore keeps one .tbl file per table inside dataDir.
type FileStore struct {
	dataDir string
}

// NewFileStore creates a FileStore rooted at dataDir.
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{dataDir: dataDir}
}

// DataDir returns the directory holding the table files.
func (s *FileStore) DataDir() string { return s.dataDir }

// Path returns the file path used for the named table.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dataDir, tableFileName(name))
}

// Contents is the parsed form of a table file. Lines holds the 1-based
// file line of each entry in Rows.
type Contents struct {
	Header []string
	Rows   [][]string
	Lines  []int
}

// Read parses the file of the named table. Spaces outside quoted literals
// are dropped and blank lines are skipped.
func (s *FileStore) Read(name string) (*Contents, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTableFileNotFound, tableFileName(name))
		}
		return nil, fmt.Errorf("open %s: %w", tableFileName(name), err)
	}
	defer f.Close()

	var c Contents
	br := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read %s: %w", tableFileName(name), err)
		}
		if text := strings.TrimRight(line, "\r\n"); strings.TrimSpace(text) != "" {
			if c.Header == nil {
				// Header tokens are "name type", so only the edges are trimmed.
				c.Header = SplitFields(text, false)
			} else {
				c.Rows = append(c.Rows, SplitFields(text, true))
				c.Lines = append(c.Lines, lineNo)
			}
		}
		if err != nil {
			break
		}
	}
	if c.Header == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTableFile, tableFileName(name))
	}
	return &c, nil
}

// Write replaces the file of the named table with content.
func (s *FileStore) Write(name, content string) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp := s.Path(name) + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tableFileName(name), err)
	}
	if err := os.Rename(tmp, s.Path(name)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tableFileName(name), err)
	}
	return nil
}

// List returns the names of all tables with a file in the data directory.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Extension))
	}
	return names, nil
}

// SplitFields splits a line on commas that are not inside single quotes.
// With squeeze set, every space outside quotes is removed; otherwise each
// field is only trimmed.
func SplitFields(line string, squeeze bool) []string {
	var (
		fields  []string
		b       strings.Builder
		inQuote bool
	)
	flush := func() {
		f := b.String()
		if !squeeze {
			f = strings.TrimSpace(f)
		}
		fields = append(fields, f)
		b.Reset()
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == ',' && !inQuote:
			flush()
		case squeeze && !inQuote && (c == ' ' || c == '\t'):
		default:
			b.WriteByte(c)
		}
	}
	flush()
	return fields
}

func tableFileName(name string) string {
	return name + Extension
}
