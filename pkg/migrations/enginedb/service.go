// Package enginedb holds all the migrations for the boost engine database
package enginedb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the engine database
var Migrations = migrate.NewMigrations()
