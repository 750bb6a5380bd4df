package enginedb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/racetoliberty/boost-engine/pkg/ledgerstore"
	mghelper "github.com/racetoliberty/boost-engine/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating token_entrants table...")
		if err := mghelper.CreateSchema(ctx, db, &ledgerstore.EntrantDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &ledgerstore.EntrantDao{}, "status")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping token_entrants table...")
		return mghelper.DropTables(ctx, db, &ledgerstore.EntrantDao{})
	})
}
