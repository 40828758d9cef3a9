package system

import (
	"fmt"

	"github.com/blockday/blockday/internal/cli"
	"github.com/blockday/blockday/internal/migration"
	"github.com/blockday/blockday/internal/storage/sqlite"
	"github.com/blockday/blockday/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite storage")
	}
	if err := sqliteStore.Open(); err != nil {
		return err
	}
	defer sqliteStore.Close()

	db := sqliteStore.DB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	runner := migration.NewRunner(db, migrations.SQLite())
	count, err := runner.Apply(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
