package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// RunMigrations applies all pending migrations from dir, which may be
// relative to the process working directory
func (p *Postgres) RunMigrations(ctx context.Context, dir string) error {
	path, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("error resolving migrations dir %q: %w", dir, err)
	}

	cc := p.pool.Config().ConnConfig
	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(cc.User),
		url.QueryEscape(cc.Password),
		cc.Host,
		cc.Port,
		cc.Database,
	)

	m, err := migrate.New("file://"+path, dbURL)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			p.log.Info("No pending migrations", zap.String("dir", path))
			return nil
		}
		return fmt.Errorf("error running migrations: %w", err)
	}

	p.log.Info("Migrations completed successfully", zap.String("dir", path))
	return nil
}
