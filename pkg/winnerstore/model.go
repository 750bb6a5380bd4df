package winnerstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/racetoliberty/boost-engine/pkg/winner"
)

// WinnerDao is a data access object that maps directly to the 'weekly_winners' table in PostgreSQL.
// week_start_date is unique so each week resolves at most once.
type WinnerDao struct {
	bun.BaseModel        `bun:"table:weekly_winners,alias:ww"`
	ID                   uuid.UUID `bun:"id,pk,type:uuid"`
	WeekStartDate        time.Time `bun:"week_start_date,unique,notnull"`
	TokenID              uuid.UUID `bun:"token_id,notnull,type:uuid"`
	FinalScore           string    `bun:"final_score,notnull,type:numeric(38,18)"`
	ResolvedAt           time.Time `bun:"resolved_at,notnull"`
	CrossPromotionActive bool      `bun:"cross_promotion_active,notnull,default:false"`
	CreatedAt            time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

func toWinnerDao(w *winner.WeeklyWinner) *WinnerDao {
	return &WinnerDao{
		ID:                   w.ID,
		WeekStartDate:        w.WeekStartDate,
		TokenID:              w.TokenID,
		FinalScore:           w.FinalScore.String(),
		ResolvedAt:           w.ResolvedAt,
		CrossPromotionActive: w.CrossPromotionActive,
	}
}

func toWinner(dao *WinnerDao) (*winner.WeeklyWinner, error) {
	score, err := decimal.NewFromString(dao.FinalScore)
	if err != nil {
		return nil, err
	}
	return &winner.WeeklyWinner{
		ID:                   dao.ID,
		WeekStartDate:        dao.WeekStartDate.UTC(),
		TokenID:              dao.TokenID,
		FinalScore:           score,
		ResolvedAt:           dao.ResolvedAt.UTC(),
		CrossPromotionActive: dao.CrossPromotionActive,
	}, nil
}
