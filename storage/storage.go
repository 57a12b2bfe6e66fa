// Package storage opens the configured database and hands out the
// repositories the services need.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yatube/backend/conf"
	"github.com/yatube/backend/pgrepo"
	"github.com/yatube/backend/post"
	"github.com/yatube/backend/sqliterepo"
	"github.com/yatube/backend/user"
)

type Repos struct {
	Users  user.UserRepo
	Posts  post.PostRepo
	Groups post.GroupRepo

	close func()
}

func (r *Repos) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open connects to postgres or sqlite depending on cfg.Driver. Postgres
// connection parameters come from the POSTGRES_* environment variables.
func Open(ctx context.Context, log *slog.Logger, cfg conf.StorageConf) (*Repos, error) {
	switch cfg.Driver {
	case "postgres":
		connStr, err := conf.GetPgConnStrFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		pool, err := openPgPool(ctx, connStr)
		if err != nil {
			return nil, err
		}
		log.Info("connected to postgres")
		return &Repos{
			Users:  pgrepo.NewPgUserRepo(pool),
			Posts:  pgrepo.NewPgPostRepo(pool),
			Groups: pgrepo.NewPgGroupRepo(pool),
			close:  pool.Close,
		}, nil

	case "sqlite":
		db, err := openSqlite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("opened sqlite database", "path", cfg.SQLitePath)
		return newSqliteRepos(db), nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

func openPgPool(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	pgConf, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	pgConf.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(ctx, pgConf)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return pool, nil
}

func openSqlite(path string) (*sql.DB, error) {
	if path != sqliterepo.MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite dir: %w", err)
			}
		}
	}
	return sqliterepo.Open(path)
}

func newSqliteRepos(db *sql.DB) *Repos {
	return &Repos{
		Users:  sqliterepo.NewUserRepo(db),
		Posts:  sqliterepo.NewPostRepo(db),
		Groups: sqliterepo.NewGroupRepo(db),
		close:  func() { db.Close() },
	}
}
