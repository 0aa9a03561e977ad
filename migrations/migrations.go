// Package migrations embeds SQL migration files and provides functions to apply them.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// FS contains the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS

// Command names accepted by Exec.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
	CommandReset   = "reset"
)

func prepare() error {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	return nil
}

// Run applies all pending migrations to the given database.
func Run(db *sql.DB) error {
	return Exec(db, CommandUp)
}

// Exec runs one goose command against the embedded migrations.
func Exec(db *sql.DB, command string) error {
	if err := prepare(); err != nil {
		return err
	}

	var err error
	switch command {
	case CommandUp:
		err = goose.Up(db, ".")
	case CommandDown:
		err = goose.Down(db, ".")
	case CommandStatus:
		err = goose.Status(db, ".")
	case CommandVersion:
		err = goose.Version(db, ".")
	case CommandReset:
		err = goose.Reset(db, ".")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}
