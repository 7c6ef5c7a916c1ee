package catalog

import (
	"fmt"
	"sort"

	"github.com/moojink/RDBMS/internal/logger"
	"github.com/moojink/RDBMS/pkg/storage"
)

// Catalog maps table names to tables and moves them to and from .tbl
// files. It is not safe for concurrent mutation.
type Catalog struct {
	tables map[string]*Table
	store  *storage.FileStore
	log    *logger.Logger
}

// New creates an empty catalog backed by store. A nil log disables logging.
func New(store *storage.FileStore, log *logger.Logger) *Catalog {
	if log == nil {
		log = logger.NewNop()
	}
	return &Catalog{
		tables: make(map[string]*Table),
		store:  store,
		log:    log.Named("catalog"),
	}
}

// Put registers t under name, replacing any table already registered.
func (c *Catalog) Put(name string, t *Table) {
	t.SetName(name)
	if _, exists := c.tables[name]; exists {
		c.log.Debug("replacing table", "table", name)
	}
	c.tables[name] = t
}

// Get returns the table registered under name.
func (c *Catalog) Get(name string) (*Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchTable, name)
	}
	return t, nil
}

// Has reports whether a table is registered under name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.tables[name]
	return ok
}

// Drop removes the table registered under name.
func (c *Catalog) Drop(name string) error {
	if _, ok := c.tables[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchTable, name)
	}
	delete(c.tables, name)
	return nil
}

// Names returns the registered table names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stored returns the names of tables that have a .tbl file on disk.
func (c *Catalog) Stored() ([]string, error) {
	if c.store == nil {
		return nil, nil
	}
	return c.store.List()
}

// DataDir returns the directory the catalog loads from and stores to.
func (c *Catalog) DataDir() string {
	if c.store == nil {
		return ""
	}
	return c.store.DataDir()
}

// Load reads <name>.tbl and registers the table, replacing any table of
// the same name. Every row is validated against the header types.
func (c *Catalog) Load(name string) (*Table, error) {
	if c.store == nil {
		return nil, fmt.Errorf("load %s: no storage configured", name)
	}
	contents, err := c.store.Read(name)
	if err != nil {
		return nil, err
	}
	t, err := NewTableFromHeader(name, contents.Header)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	for i, row := range contents.Rows {
		if err := t.AddRowLiterals(row); err != nil {
			return nil, fmt.Errorf("load %s: line %d: %w", name, contents.Lines[i], err)
		}
	}
	c.Put(name, t)
	c.log.Debug("table loaded", "table", name, "rows", t.NumRows(), "path", c.store.Path(name))
	return t, nil
}

// Store writes the named table to <name>.tbl, replacing the file.
func (c *Catalog) Store(name string) error {
	t, err := c.Get(name)
	if err != nil {
		return err
	}
	if c.store == nil {
		return fmt.Errorf("store %s: no storage configured", name)
	}
	if err := c.store.Write(name, t.String()); err != nil {
		return err
	}
	c.log.Debug("table stored", "table", name, "rows", t.NumRows(), "path", c.store.Path(name))
	return nil
}
