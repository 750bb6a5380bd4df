package ledgerstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/racetoliberty/boost-engine/pkg/boost"
	"github.com/racetoliberty/boost-engine/pkg/entrant"
)

// EntrantDao is a data access object that maps directly to the 'token_entrants' table in PostgreSQL.
type EntrantDao struct {
	bun.BaseModel `bun:"table:token_entrants,alias:te"`
	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	Symbol        string    `bun:"symbol,notnull,type:varchar(20)"`
	Name          string    `bun:"name,notnull,type:varchar(100)"`
	LogoURL       string    `bun:"logo_url,type:varchar(500)"`
	Blockchain    string    `bun:"blockchain,notnull,type:varchar(50)"`
	Status        string    `bun:"status,notnull,type:varchar(20)"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

// BoostDao is a data access object that maps directly to the 'boosts' table in PostgreSQL.
// Rows are append-only; the unique idempotency_key index is the guard
// against double-crediting on webhook redelivery.
type BoostDao struct {
	bun.BaseModel  `bun:"table:boosts,alias:b"`
	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	TokenID        uuid.UUID `bun:"token_id,notnull,type:uuid"`
	PackType       string    `bun:"pack_type,notnull,type:varchar(20)"`
	OriginalPoints string    `bun:"original_points,notnull,type:numeric(38,18)"`
	AppliedAt      time.Time `bun:"applied_at,notnull"`
	DecayHours     int       `bun:"decay_hours,notnull"`
	IdempotencyKey string    `bun:"idempotency_key,unique,notnull,type:varchar(255)"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

func toEntrantDao(e *entrant.TokenEntrant) *EntrantDao {
	return &EntrantDao{
		ID:         e.ID,
		Symbol:     e.Symbol,
		Name:       e.Name,
		LogoURL:    e.LogoURL,
		Blockchain: e.Blockchain,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
	}
}

func toEntrant(dao *EntrantDao) *entrant.TokenEntrant {
	return &entrant.TokenEntrant{
		ID:         dao.ID,
		Symbol:     dao.Symbol,
		Name:       dao.Name,
		LogoURL:    dao.LogoURL,
		Blockchain: dao.Blockchain,
		Status:     entrant.Status(dao.Status),
		CreatedAt:  dao.CreatedAt,
	}
}

func toBoostDao(b *boost.Boost) *BoostDao {
	return &BoostDao{
		ID:             b.ID,
		TokenID:        b.TokenID,
		PackType:       string(b.PackType),
		OriginalPoints: b.OriginalPoints.String(),
		AppliedAt:      b.AppliedAt,
		DecayHours:     b.DecayHours,
		IdempotencyKey: b.IdempotencyKey,
	}
}

// toBoost converts a BoostDao to boost.Boost. A row whose points column
// does not parse is reported as an error; list conversions skip it.
func toBoost(dao *BoostDao) (*boost.Boost, error) {
	points, err := decimal.NewFromString(dao.OriginalPoints)
	if err != nil {
		return nil, err
	}
	return &boost.Boost{
		ID:             dao.ID,
		TokenID:        dao.TokenID,
		PackType:       boost.PackType(dao.PackType),
		OriginalPoints: points,
		AppliedAt:      dao.AppliedAt.UTC(),
		DecayHours:     dao.DecayHours,
		IdempotencyKey: dao.IdempotencyKey,
	}, nil
}
