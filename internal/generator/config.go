package generator

import (
	"strings"

	"github.com/koustreak/tablegen/internal/errs"
)

// DefaultWorkers is the worker count of a run that does not set one.
const DefaultWorkers = 5

// Config is the read-only input of one run, shared by the discoverer and
// every worker.
type Config struct {
	// All discovers every base table through the catalog. Ignored when
	// Tables is non-empty.
	All bool

	// Tables lists the tables to process, in order.
	Tables []string

	// Workers is the number of concurrent generator workers.
	Workers int
}

// Explicit reports whether the run processes a configured table list.
func (c *Config) Explicit() bool {
	return len(c.Tables) > 0
}

// Validate checks c before anything connects to the database.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errs.Newf(errs.ErrKindInvalidInput, "threads must be at least 1, got %d", c.Workers)
	}
	if c.All || c.Explicit() {
		return nil
	}
	return errs.New(errs.ErrKindInvalidInput, `choose "all" or "tables" option with list of tables`)
}

// ParseTables splits a ";"-delimited list, trimming names and dropping
// blank segments.
func ParseTables(list string) []string {
	var tables []string
	for _, name := range strings.Split(list, ";") {
		if name = strings.TrimSpace(name); name != "" {
			tables = append(tables, name)
		}
	}
	return tables
}
