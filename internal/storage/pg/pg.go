package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/safespace-dev/safespace/internal/config"
	"github.com/safespace-dev/safespace/internal/logger"

	_ "github.com/lib/pq"
)

//go:embed migrations/init.sql
var initSchema string

type Storage struct {
	db *sql.DB
}

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Private.Pg.Host)
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	storage := &Storage{db}
	if err := storage.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Log.Info("connected to db")
	return storage, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	pgCfg := cfg.Private.Pg
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		pgCfg.Host, pgCfg.Port, pgCfg.User, pgCfg.Password, pgCfg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func (s *Storage) migrate() error {
	_, err := s.db.Exec(initSchema)
	return err
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}
