// services/community.go - Leaderboard, community listing and public profiles
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"ecotrack/models"

	"gorm.io/gorm"
)

const (
	leaderboardSize     = 50
	defaultAvatar       = "/images/default-avatar.png"
	maxCommunityPerPage = 100
)

type CommunityService struct {
	db *gorm.DB
}

func NewCommunityService(db *gorm.DB) *CommunityService {
	return &CommunityService{db: db}
}

type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Avatar        string  `json:"avatar"`
	Country       string  `json:"country"`
	EcoScore      int     `json:"eco_score"`
	TotalSaved    float64 `json:"total_saved"`
	StreakCurrent int     `json:"streak_current"`
}

// Leaderboard returns the top users by ecoScore.
func (s *CommunityService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Order("eco_score DESC").Order("created_at ASC").
		Limit(leaderboardSize).
		Find(&users).Error
	if err != nil {
		return nil, storageErr("leaderboard", err)
	}

	out := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		avatar := u.Avatar
		if avatar == "" {
			avatar = defaultAvatar
		}
		out[i] = LeaderboardEntry{
			Rank:          i + 1,
			ID:            u.ID,
			Name:          u.Name,
			Avatar:        avatar,
			Country:       u.Country,
			EcoScore:      u.EcoScore,
			TotalSaved:    u.TotalSaved,
			StreakCurrent: u.StreakCurrent,
		}
	}
	return out, nil
}

type PublicUser struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Avatar              string    `json:"avatar"`
	Country             string    `json:"country,omitempty"`
	EcoScore            int       `json:"eco_score"`
	CarbonEmitted       float64   `json:"carbon_emitted"`
	CarbonAvoided       float64   `json:"carbon_avoided"`
	StreakCurrent       int       `json:"streak_current"`
	StreakLongest       int       `json:"streak_longest"`
	CompletedChallenges int64     `json:"completed_challenges"`
	CreatedAt           time.Time `json:"created_at"`
}

func publicUser(u models.User) PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Avatar:        u.Avatar,
		Country:       u.Country,
		EcoScore:      u.EcoScore,
		CarbonEmitted: u.CarbonEmitted,
		CarbonAvoided: u.CarbonAvoided,
		StreakCurrent: u.StreakCurrent,
		StreakLongest: u.StreakLongest,
		CreatedAt:     u.CreatedAt,
	}
}

type CommunityPage struct {
	Users      []PublicUser `json:"users"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
}

// Community lists public profiles by ecoScore, optionally filtered by name.
func (s *CommunityService) Community(ctx context.Context, search string, page, limit int) (*CommunityPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	limit = min(limit, maxCommunityPerPage)

	q := s.db.WithContext(ctx).Model(&models.User{}).Where("public_profile = ?", true)
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, storageErr("count community", err)
	}

	var users []models.User
	if err := q.Order("eco_score DESC").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		return nil, storageErr("list community", err)
	}

	out := &CommunityPage{
		Users:      make([]PublicUser, len(users)),
		Total:      total,
		Page:       page,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
	for i, u := range users {
		out.Users[i] = publicUser(u)
	}
	return out, nil
}

type PublicProfile struct {
	User             PublicUser        `json:"user"`
	RecentActivities []models.Activity `json:"recent_activities"`
}

// Profile returns a public profile. Private profiles are reported as missing.
func (s *CommunityService) Profile(ctx context.Context, userID string) (*PublicProfile, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where("id = ? AND public_profile = ?", userID, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user", userID)
	}
	if err != nil {
		return nil, storageErr("load profile", err)
	}

	pub := publicUser(user)
	if err := db.Model(&models.ChallengeParticipant{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&pub.CompletedChallenges).Error; err != nil {
		return nil, storageErr("count completed challenges", err)
	}

	var recent []models.Activity
	if err := db.Where("user_id = ?", userID).Order("date DESC").Limit(recentActivityLimit).Find(&recent).Error; err != nil {
		return nil, storageErr("recent activities", err)
	}
	return &PublicProfile{User: pub, RecentActivities: recent}, nil
}
