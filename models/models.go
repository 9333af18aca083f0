// models/models.go - Activity log and quest claims
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is one logged action. CarbonImpact and Points are snapshotted at
// write time; reports sum them and never recompute.
type Activity struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID       string    `json:"user_id" gorm:"type:varchar(36);not null;index:idx_activities_user_date,priority:1"`
	Type         string    `json:"type" gorm:"not null;size:50;index"`
	Action       string    `json:"action" gorm:"not null;size:100"`
	Description  string    `json:"description" gorm:"type:text"`
	CatalogID    *string   `json:"catalog_id,omitempty" gorm:"size:100"`
	Quantity     *float64  `json:"quantity,omitempty"`
	CarbonImpact float64   `json:"carbon_impact" gorm:"not null"`
	Points       int       `json:"points" gorm:"not null"`
	IsEmission   bool      `json:"is_emission" gorm:"not null"`
	IsAvoided    bool      `json:"is_avoided" gorm:"not null"`
	Date         time.Time `json:"date" gorm:"not null;index:idx_activities_user_date,priority:2"`
	CreatedAt    time.Time `json:"created_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// QuestClaim records a paid daily quest reward. Day is the calendar day in the
// reference location, formatted YYYY-MM-DD.
type QuestClaim struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_quest_claims_once,priority:1"`
	QuestID   string    `json:"quest_id" gorm:"size:50;not null;uniqueIndex:idx_quest_claims_once,priority:2"`
	Day       string    `json:"day" gorm:"size:10;not null;uniqueIndex:idx_quest_claims_once,priority:3"`
	Reward    int       `json:"reward" gorm:"not null"`
	ClaimedAt time.Time `json:"claimed_at" gorm:"not null"`
}

func (q *QuestClaim) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

func (Activity) TableName() string {
	return "activities"
}

func (QuestClaim) TableName() string {
	return "quest_claims"
}
