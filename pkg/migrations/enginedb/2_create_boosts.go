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
		log.Println("creating boosts table...")
		if err := mghelper.CreateSchema(ctx, db, &ledgerstore.BoostDao{}); err != nil {
			return err
		}
		if err := mghelper.CreateModelUniqueIndexes(ctx, db, &ledgerstore.BoostDao{}, "idempotency_key"); err != nil {
			return err
		}
		// token_id drives the per-token score query, applied_at the weekly window scan.
		return mghelper.CreateModelIndexes(ctx, db, &ledgerstore.BoostDao{}, "token_id", "applied_at")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping boosts table...")
		return mghelper.DropTables(ctx, db, &ledgerstore.BoostDao{})
	})
}
