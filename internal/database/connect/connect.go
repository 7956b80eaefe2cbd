// Package connect opens the database.DB implementation named by a Config.
package connect

import (
	"context"

	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/database/mysql"
	"github.com/koustreak/tablegen/internal/database/postgres"
	"github.com/koustreak/tablegen/internal/database/pq"
	"github.com/koustreak/tablegen/internal/database/sqlite"
	"github.com/koustreak/tablegen/internal/errs"
)

// Open connects using the driver selected by cfg.Driver. An empty driver
// means postgres.
func Open(ctx context.Context, cfg *database.Config) (database.DB, error) {
	switch cfg.Driver {
	case database.DriverPostgres, "":
		return postgres.New(ctx, cfg)
	case database.DriverPQ:
		return pq.New(ctx, cfg)
	case database.DriverMySQL:
		return mysql.New(ctx, cfg)
	case database.DriverSQLite:
		return sqlite.New(ctx, cfg)
	default:
		return nil, errs.Newf(errs.ErrKindInvalidInput, "unknown database driver %q", cfg.Driver)
	}
}
