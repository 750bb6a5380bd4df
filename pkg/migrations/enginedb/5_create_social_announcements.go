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
		log.Println("creating social_announcements table...")
		if err := mghelper.CreateSchema(ctx, db, &dispatchstore.AnnouncementDao{}); err != nil {
			return err
		}
		// The sweep filters on status and orders by send_after.
		return mghelper.CreateModelIndexes(ctx, db, &dispatchstore.AnnouncementDao{}, "status", "send_after")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping social_announcements table...")
		return mghelper.DropTables(ctx, db, &dispatchstore.AnnouncementDao{})
	})
}
