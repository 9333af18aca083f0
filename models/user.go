// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User carries the per-user aggregate. Only services.UserStatsService writes
// the stats block.
type User struct {
	ID            string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name          string `gorm:"not null;index" json:"name"`
	Email         string `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	Avatar        string `json:"avatar"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	PublicProfile bool   `json:"public_profile"`

	// Stats
	EcoScore      int        `gorm:"not null;default:0;index" json:"eco_score"`
	TotalSaved    float64    `gorm:"not null;default:0" json:"total_saved"`
	CarbonEmitted float64    `gorm:"not null;default:0" json:"carbon_emitted"`
	CarbonAvoided float64    `gorm:"not null;default:0" json:"carbon_avoided"`
	StreakCurrent int        `gorm:"not null;default:0" json:"streak_current"`
	StreakLongest int        `gorm:"not null;default:0" json:"streak_longest"`
	LastActivity  *time.Time `json:"last_activity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Activities []Activity `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"activities,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
