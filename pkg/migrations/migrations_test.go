package migrations

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun/migrate"

	"github.com/racetoliberty/boost-engine/pkg/migrations/enginedb"
	"github.com/racetoliberty/boost-engine/pkg/pgutil"
)

func requireDockerAccess(t *testing.T) {
	t.Helper()

	candidates := []string{
		"/var/run/docker.sock",
		filepath.Join(os.Getenv("HOME"), ".docker/run/docker.sock"),
	}

	for _, sock := range candidates {
		if sock == "" {
			continue
		}
		if _, err := os.Stat(sock); err != nil {
			continue
		}
		conn, err := (&net.Dialer{}).DialContext(context.Background(), "unix", sock)
		if err == nil {
			_ = conn.Close()
			return
		}
	}

	t.Skip("docker daemon socket is not accessible; skipping testcontainer-backed migration tests")
}

func TestEngineDBMigrations_Apply(t *testing.T) {
	requireDockerAccess(t)

	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, enginedb.Migrations)

	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if group.IsZero() {
		t.Error("Expected migrations to run, but none were applied")
	}

	expectedTables := []string{
		"token_entrants",
		"boosts",
		"weekly_winners",
		"cross_promotions",
		"social_announcements",
		"bun_migrations",
	}
	for _, table := range expectedTables {
		pgutil.AssertTableExists(t, db, table)
	}

	pgutil.AssertIndexExists(t, db, "idx_token_entrants_status")
	pgutil.AssertIndexExists(t, db, "idx_boosts_idempotency_key")
	pgutil.AssertIndexExists(t, db, "idx_boosts_token_id")
	pgutil.AssertIndexExists(t, db, "idx_boosts_applied_at")
	pgutil.AssertIndexExists(t, db, "idx_weekly_winners_week_start_date")
	pgutil.AssertIndexExists(t, db, "idx_cross_promotions_status")
	pgutil.AssertIndexExists(t, db, "idx_social_announcements_status")
	pgutil.AssertIndexExists(t, db, "idx_social_announcements_send_after")
}

func TestEngineDBMigrations_Idempotency(t *testing.T) {
	requireDockerAccess(t)

	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, enginedb.Migrations)

	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("First Migrate() failed: %v", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		t.Fatalf("Second Migrate() failed: %v", err)
	}
	if !group.IsZero() {
		t.Error("Expected no new migrations on second run")
	}

	pgutil.AssertTableExists(t, db, "boosts")
	pgutil.AssertTableExists(t, db, "weekly_winners")
}

func TestEngineDBMigrations_Rollback(t *testing.T) {
	requireDockerAccess(t)

	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, enginedb.Migrations)

	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	pgutil.AssertTableExists(t, db, "token_entrants")
	pgutil.AssertTableExists(t, db, "social_announcements")

	// Migrate() applies everything as one group, so a single rollback
	// reverts the full schema.
	group, err := migrator.Rollback(ctx)
	if err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}
	if group.IsZero() {
		t.Error("Expected rollback to process a migration")
	}

	pgutil.AssertTableNotExists(t, db, "social_announcements")
	pgutil.AssertTableNotExists(t, db, "cross_promotions")
	pgutil.AssertTableNotExists(t, db, "weekly_winners")
	pgutil.AssertTableNotExists(t, db, "boosts")
	pgutil.AssertTableNotExists(t, db, "token_entrants")
}
