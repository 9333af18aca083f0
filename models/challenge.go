// models/challenge.go - Challenge System Data Models
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChallengePeriod string

const (
	ChallengeDaily   ChallengePeriod = "daily"
	ChallengeWeekly  ChallengePeriod = "weekly"
	ChallengeMonthly ChallengePeriod = "monthly"
)

// ChallengeTarget is stored as a JSON column.
type ChallengeTarget struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
	Unit   string `json:"unit"`
}

// Challenge is a time-boxed goal users can join.
type Challenge struct {
	ID          string                               `json:"id" gorm:"type:varchar(36);primaryKey"`
	Title       string                               `json:"title" gorm:"not null;size:150"`
	Description string                               `json:"description" gorm:"type:text"`
	Type        ChallengePeriod                      `json:"type" gorm:"size:20"`
	Category    *string                              `json:"category" gorm:"size:50;index"`
	Target      datatypes.JSONType[ChallengeTarget] `json:"target"`
	Reward      int                                  `json:"reward" gorm:"not null"`
	BadgeID     *string                              `json:"badge_id"`
	StartDate   time.Time                            `json:"start_date"`
	EndDate     time.Time                            `json:"end_date"`
	IsActive    bool                                 `json:"is_active" gorm:"index"`
	CreatedAt   time.Time                            `json:"created_at"`
	UpdatedAt   time.Time                            `json:"updated_at"`
}

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ChallengeParticipant is a user's membership in a challenge. The composite
// key allows one row per pair. Rewarded is set exactly once, by the grant.
type ChallengeParticipant struct {
	UserID      string     `json:"user_id" gorm:"type:varchar(36);primaryKey"`
	ChallengeID string     `json:"challenge_id" gorm:"type:varchar(36);primaryKey;index"`
	Challenge   *Challenge `json:"challenge,omitempty" gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE"`
	Progress    int        `json:"progress" gorm:"not null;default:0"`
	Completed   bool       `json:"completed" gorm:"not null"`
	CompletedAt *time.Time `json:"completed_at"`
	Rewarded    bool       `json:"rewarded" gorm:"not null"`
	RewardedAt  *time.Time `json:"rewarded_at"`
	JoinedAt    time.Time  `json:"joined_at" gorm:"not null"`
}

func (Challenge) TableName() string {
	return "challenges"
}

func (ChallengeParticipant) TableName() string {
	return "challenge_participants"
}
