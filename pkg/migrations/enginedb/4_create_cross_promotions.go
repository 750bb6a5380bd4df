package enginedb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/racetoliberty/boost-engine/pkg/dispatchstore"
	mghelper "github.com/racetoliberty/boost-engine/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating cross_promotions table...")
		if err := mghelper.CreateSchema(ctx, db, &dispatchstore.PromotionDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &dispatchstore.PromotionDao{}, "status", "week_start_date", "winner_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping cross_promotions table...")
		return mghelper.DropTables(ctx, db, &dispatchstore.PromotionDao{})
	})
}
