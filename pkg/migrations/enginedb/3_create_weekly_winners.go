package enginedb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	mghelper "github.com/racetoliberty/boost-engine/pkg/pgutil/migrations"
	"github.com/racetoliberty/boost-engine/pkg/winnerstore"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating weekly_winners table...")
		if err := mghelper.CreateSchema(ctx, db, &winnerstore.WinnerDao{}); err != nil {
			return err
		}
		// One winner per competition week, enforced at the storage layer.
		return mghelper.CreateModelUniqueIndexes(ctx, db, &winnerstore.WinnerDao{}, "week_start_date")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping weekly_winners table...")
		return mghelper.DropTables(ctx, db, &winnerstore.WinnerDao{})
	})
}
