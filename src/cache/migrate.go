package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"

	migrate "github.com/ironsmile/sql-migrate"
)

// sqlMigrateDirectory is the directory within the `sqlFiles` which contains
// the .sql files for sql-migrate.
const sqlMigrateDirectory = "migrations"

// applyMigrations reads the database migrations dir and applies them to the
// db if necessary.
func applyMigrations(db *sql.DB, sqlFiles fs.FS) error {
	migrationFiles, err := fs.Sub(sqlFiles, sqlMigrateDirectory)
	if err != nil {
		return fmt.Errorf("locating migrate dir within sqlFiles fs.FS failed: %w", err)
	}

	migrations := &migrate.HttpFileSystemMigrationSource{
		FileSystem: http.FS(migrationFiles),
	}

	n, err := migrate.ExecMax(db, "sqlite3", migrations, migrate.Up, 0)
	if err == nil {
		if n > 0 {
			log.Printf("Applied %d cache index migrations\n", n)
		}
		return nil
	}

	var planErr *migrate.PlanError
	if errors.As(err, &planErr) {
		log.Printf("Error applying cache index migrations: %s\n", err)
		return nil
	}

	return fmt.Errorf("executing db migration failed: %w", err)
}
