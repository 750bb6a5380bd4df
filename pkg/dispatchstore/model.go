package dispatchstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/racetoliberty/boost-engine/pkg/dispatch"
)

// PromotionDao is a data access object that maps directly to the 'cross_promotions' table in PostgreSQL.
// The id is deterministic per (week, token, tier), so the primary key
// doubles as the idempotency guard for scheduling.
type PromotionDao struct {
	bun.BaseModel `bun:"table:cross_promotions,alias:cp"`
	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	WinnerID      uuid.UUID `bun:"winner_id,notnull,type:uuid"`
	WeekStartDate time.Time `bun:"week_start_date,notnull"`
	TokenID       uuid.UUID `bun:"token_id,notnull,type:uuid"`
	Tier          string    `bun:"tier,notnull,type:varchar(10)"`
	Slot          string    `bun:"slot,notnull,type:varchar(20)"`
	Episode       string    `bun:"episode,type:varchar(200)"`
	AirAt         time.Time `bun:"air_at,notnull"`
	Status        string    `bun:"status,notnull,type:varchar(20)"`
	Listens       *int64    `bun:"listens"`
	ClickThrus    *int64    `bun:"click_thrus"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

// AnnouncementDao is a data access object that maps directly to the 'social_announcements' table in PostgreSQL.
type AnnouncementDao struct {
	bun.BaseModel `bun:"table:social_announcements,alias:sa"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid"`
	Type          string     `bun:"type,notnull,type:varchar(30)"`
	Platform      string     `bun:"platform,notnull,type:varchar(20)"`
	TokenID       uuid.UUID  `bun:"token_id,notnull,type:uuid"`
	Body          string     `bun:"body,notnull,type:text"`
	SendAfter     time.Time  `bun:"send_after,notnull"`
	Status        string     `bun:"status,notnull,type:varchar(20)"`
	Attempts      int        `bun:"attempts,notnull,default:0"`
	LastError     string     `bun:"last_error,type:text"`
	SentAt        *time.Time `bun:"sent_at"`
	Listens       *int64     `bun:"listens"`
	ClickThrus    *int64     `bun:"click_thrus"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,default:current_timestamp"`
}

func toPromotionDao(p *dispatch.CrossPromotion) *PromotionDao {
	dao := &PromotionDao{
		ID:            p.ID,
		WinnerID:      p.WinnerID,
		WeekStartDate: p.WeekStartDate,
		TokenID:       p.TokenID,
		Tier:          string(p.Tier),
		Slot:          string(p.Slot),
		Episode:       p.Episode,
		AirAt:         p.AirAt,
		Status:        string(p.Status),
	}
	if p.Engagement != nil {
		listens := p.Engagement.Listens
		clicks := p.Engagement.ClickThrus
		dao.Listens = &listens
		dao.ClickThrus = &clicks
	}
	return dao
}

func toPromotion(dao *PromotionDao) *dispatch.CrossPromotion {
	p := &dispatch.CrossPromotion{
		ID:            dao.ID,
		WinnerID:      dao.WinnerID,
		WeekStartDate: dao.WeekStartDate.UTC(),
		TokenID:       dao.TokenID,
		Tier:          dispatch.Tier(dao.Tier),
		Slot:          dispatch.AdSlot(dao.Slot),
		Episode:       dao.Episode,
		AirAt:         dao.AirAt.UTC(),
		Status:        dispatch.PromotionStatus(dao.Status),
		CreatedAt:     dao.CreatedAt,
	}
	if dao.Listens != nil || dao.ClickThrus != nil {
		m := &dispatch.EngagementMetrics{}
		if dao.Listens != nil {
			m.Listens = *dao.Listens
		}
		if dao.ClickThrus != nil {
			m.ClickThrus = *dao.ClickThrus
		}
		p.Engagement = m
	}
	return p
}

func toAnnouncementDao(a *dispatch.SocialAnnouncement) *AnnouncementDao {
	dao := &AnnouncementDao{
		ID:        a.ID,
		Type:      string(a.Type),
		Platform:  string(a.Platform),
		TokenID:   a.TokenID,
		Body:      a.Body,
		SendAfter: a.SendAfter,
		Status:    string(a.Status),
		Attempts:  a.Attempts,
		LastError: a.LastError,
		SentAt:    a.SentAt,
	}
	if a.Engagement != nil {
		listens := a.Engagement.Listens
		clicks := a.Engagement.ClickThrus
		dao.Listens = &listens
		dao.ClickThrus = &clicks
	}
	return dao
}

func toAnnouncement(dao *AnnouncementDao) *dispatch.SocialAnnouncement {
	a := &dispatch.SocialAnnouncement{
		ID:        dao.ID,
		Type:      dispatch.AnnouncementType(dao.Type),
		Platform:  dispatch.Platform(dao.Platform),
		TokenID:   dao.TokenID,
		Body:      dao.Body,
		SendAfter: dao.SendAfter.UTC(),
		Status:    dispatch.AnnouncementStatus(dao.Status),
		Attempts:  dao.Attempts,
		LastError: dao.LastError,
		CreatedAt: dao.CreatedAt,
	}
	if dao.SentAt != nil {
		sentAt := dao.SentAt.UTC()
		a.SentAt = &sentAt
	}
	if dao.Listens != nil || dao.ClickThrus != nil {
		m := &dispatch.EngagementMetrics{}
		if dao.Listens != nil {
			m.Listens = *dao.Listens
		}
		if dao.ClickThrus != nil {
			m.ClickThrus = *dao.ClickThrus
		}
		a.Engagement = m
	}
	return a
}
