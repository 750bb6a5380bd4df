package main

import (
	"flag"
	"log"

	"github.com/uptrace/bun/migrate"

	"github.com/racetoliberty/boost-engine/pkg/config"
	"github.com/racetoliberty/boost-engine/pkg/migrations/enginedb"
	"github.com/racetoliberty/boost-engine/pkg/pgutil"
	mghelper "github.com/racetoliberty/boost-engine/pkg/pgutil/migrations"
)

func main() {
	cfgPath := flag.String("config", "config.example.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		log.Fatalf("error connecting to database: %s", err.Error())
	}
	defer db.Close()

	log.Printf("Running migrations for boost engine database (%s)...\n", cfg.Database.Database)

	migrator := migrate.NewMigrator(db, enginedb.Migrations)

	if err := mghelper.RunMigrations(migrator, flag.Args()...); err != nil {
		mghelper.Exitf(err.Error())
	}
}
