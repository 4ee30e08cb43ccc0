package postgres

import (
	"database/sql"

	migrate "github.com/rubenv/sql-migrate"
)

// This file maintains the database migration code.  See
// https://github.com/rubenv/sql-migrate for details of what goes in
// here.  This runs "outside" the normal request flow, either at
// initial startup or from an external tool.

var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1_initial",
			Up: []string{
				`CREATE TABLE collections (
					name TEXT PRIMARY KEY
				)`,
				`CREATE TABLE records (
					collection TEXT NOT NULL
						REFERENCES collections(name)
						ON DELETE CASCADE,
					id TEXT NOT NULL,
					data BYTEA NOT NULL,
					created TIMESTAMP WITH TIME ZONE NOT NULL,
					updated TIMESTAMP WITH TIME ZONE NOT NULL,
					PRIMARY KEY (collection, id)
				)`,
			},
			Down: []string{
				`DROP TABLE records`,
				`DROP TABLE collections`,
			},
		},
	},
}

// Upgrade upgrades a database to the latest database schema version.
func Upgrade(db *sql.DB) error {
	_, err := migrate.Exec(db, "postgres", migrationSource, migrate.Up)
	return err
}

// Drop clears a database by running all of the migrations in reverse,
// ultimately resulting in dropping all of the tables.
func Drop(db *sql.DB) error {
	_, err := migrate.Exec(db, "postgres", migrationSource, migrate.Down)
	return err
}
