// Package dispatch schedules winner rewards: podcast cross-promotions
// and social announcements.
package dispatch

import (
	"time"

	"github.com/google/uuid"
)

// AdSlot is the placement of a cross-promotion inside a podcast episode.
type AdSlot string

const (
	SlotOpening AdSlot = "opening"
	SlotMidRoll AdSlot = "mid-roll"
	SlotClosing AdSlot = "closing"
)

// Valid reports whether s is a known ad slot.
func (s AdSlot) Valid() bool {
	switch s {
	case SlotOpening, SlotMidRoll, SlotClosing:
		return true
	}
	return false
}

// Tier is a leaderboard placement eligible for rewards.
type Tier string

const (
	TierTop1 Tier = "top1"
	TierTop2 Tier = "top2"
	TierTop3 Tier = "top3"
)

// TierForRank maps a 1-based leaderboard rank to its reward tier.
func TierForRank(rank int) (Tier, bool) {
	switch rank {
	case 1:
		return TierTop1, true
	case 2:
		return TierTop2, true
	case 3:
		return TierTop3, true
	}
	return "", false
}

// SlotForTier maps a reward tier to its podcast ad slot. The winner
// takes the opening, runners-up take mid-roll and closing.
func SlotForTier(tier Tier) AdSlot {
	switch tier {
	case TierTop1:
		return SlotOpening
	case TierTop2:
		return SlotMidRoll
	default:
		return SlotClosing
	}
}

// PromotionStatus is the lifecycle state of a scheduled cross-promotion.
type PromotionStatus string

const (
	PromotionScheduled PromotionStatus = "scheduled"
	PromotionAired     PromotionStatus = "aired"
	PromotionCancelled PromotionStatus = "cancelled"
)

// promotionTransitions holds the allowed status moves. Aired and
// cancelled are terminal.
var promotionTransitions = map[PromotionStatus][]PromotionStatus{
	PromotionScheduled: {PromotionAired, PromotionCancelled},
}

// CanTransition reports whether a promotion may move from one status to another.
func CanTransition(from, to PromotionStatus) bool {
	for _, allowed := range promotionTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// EngagementMetrics captures listener response to an aired promotion.
type EngagementMetrics struct {
	Listens    int64 `json:"listens"`
	ClickThrus int64 `json:"click_thrus"`
}

// CrossPromotion is a booked podcast ad for a weekly winner.
type CrossPromotion struct {
	ID            uuid.UUID
	WinnerID      uuid.UUID
	WeekStartDate time.Time
	TokenID       uuid.UUID
	Tier          Tier
	Slot          AdSlot
	Episode       string
	AirAt         time.Time
	Status        PromotionStatus
	Engagement    *EngagementMetrics
	CreatedAt     time.Time
}

// promotionNamespace makes promotion ids a pure function of the
// (winner, token, tier) triple so re-scheduling after a crash produces
// the same row instead of a duplicate booking.
var promotionNamespace = uuid.MustParse("b8a9c3d1-4f2e-4a6b-9c8d-7e5f3a1b2c4d")

// PromotionID derives the deterministic id for a promotion booking.
func PromotionID(winnerID, tokenID uuid.UUID, tier Tier) uuid.UUID {
	name := winnerID.String() + "|" + tokenID.String() + "|" + string(tier)
	return uuid.NewSHA1(promotionNamespace, []byte(name))
}

// NewCrossPromotion creates a promotion for tokenID at the given tier,
// booked against the winner's week and airing at airAt.
func NewCrossPromotion(winnerID uuid.UUID, weekStart time.Time, tokenID uuid.UUID, tier Tier, episode string, airAt time.Time) *CrossPromotion {
	return &CrossPromotion{
		ID:            PromotionID(winnerID, tokenID, tier),
		WinnerID:      winnerID,
		WeekStartDate: weekStart.UTC(),
		TokenID:       tokenID,
		Tier:          tier,
		Slot:          SlotForTier(tier),
		Episode:       episode,
		AirAt:         airAt.UTC(),
		Status:        PromotionScheduled,
	}
}

// Platform is a social channel announcements go out on.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformTelegram Platform = "telegram"
)

// AnnouncementStatus is the delivery state of a social announcement.
// Processing is an internal claim taken by the sweep so concurrent
// sweeps do not send the same message twice.
type AnnouncementStatus string

const (
	AnnouncementPending    AnnouncementStatus = "pending"
	AnnouncementProcessing AnnouncementStatus = "processing"
	AnnouncementSent       AnnouncementStatus = "sent"
	AnnouncementFailed     AnnouncementStatus = "failed"
)

// AnnouncementType identifies what an announcement is about.
type AnnouncementType string

const (
	AnnounceBoostActivated AnnouncementType = "boost_activated"
	AnnounceWeeklyWinner   AnnouncementType = "weekly_winner"
)

// SocialAnnouncement is one message queued for a platform. Staggered
// announcements carry a SendAfter in the future and stay pending until
// the sweep picks them up. Engagement starts nil and becomes a zeroed
// placeholder once the announcement is sent; platform callbacks fill
// it in later.
type SocialAnnouncement struct {
	ID         uuid.UUID
	Type       AnnouncementType
	Platform   Platform
	TokenID    uuid.UUID
	Body       string
	SendAfter  time.Time
	Status     AnnouncementStatus
	Attempts   int
	LastError  string
	SentAt     *time.Time
	Engagement *EngagementMetrics
	CreatedAt  time.Time
}

// NewAnnouncement creates a pending announcement for platform, held
// until sendAfter.
func NewAnnouncement(typ AnnouncementType, platform Platform, tokenID uuid.UUID, body string, sendAfter time.Time) *SocialAnnouncement {
	return &SocialAnnouncement{
		ID:        uuid.New(),
		Type:      typ,
		Platform:  platform,
		TokenID:   tokenID,
		Body:      body,
		SendAfter: sendAfter.UTC(),
		Status:    AnnouncementPending,
	}
}
