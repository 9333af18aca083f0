package services

import (
	"context"
	"math"
	"sort"
	"time"

	"ecotrack/catalog"
	"ecotrack/models"
)

const topActivitiesLimit = 5

type TopActivity struct {
	Description string    `json:"description"`
	Carbon      float64   `json:"carbon"`
	Points      int       `json:"points"`
	Date        time.Time `json:"date"`
}

// Analytics aggregates a user's stored activities. Points are summed from
// the snapshot on each activity.
type Analytics struct {
	CarbonByCategory map[string]float64 `json:"carbon_by_category"`
	PointsByCategory map[string]int     `json:"points_by_category"`
	ActivityCounts   map[string]int     `json:"activity_counts"`
	TotalCarbon      float64            `json:"total_carbon"`
	TotalPoints      int                `json:"total_points"`
	TotalActivities  int                `json:"total_activities"`
	TopActivities    []TopActivity      `json:"top_activities"`
	CarbonEmitted    float64            `json:"carbon_emitted"`
	CarbonAvoided    float64            `json:"carbon_avoided"`
	EcoScore         int                `json:"eco_score"`
}

func (s *ActivityService) Analytics(ctx context.Context, userID string) (*Analytics, error) {
	user, err := s.stats.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var acts []models.Activity
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&acts).Error; err != nil {
		return nil, storageErr("analytics activities", err)
	}

	out := &Analytics{
		CarbonByCategory: make(map[string]float64, len(catalog.Categories)),
		PointsByCategory: make(map[string]int, len(catalog.Categories)),
		ActivityCounts:   make(map[string]int, len(catalog.Categories)),
		TotalActivities:  len(acts),
		TopActivities:    []TopActivity{},
		CarbonEmitted:    user.CarbonEmitted,
		CarbonAvoided:    user.CarbonAvoided,
		EcoScore:         user.EcoScore,
	}
	for _, c := range catalog.Categories {
		out.CarbonByCategory[string(c)] = 0
		out.PointsByCategory[string(c)] = 0
		out.ActivityCounts[string(c)] = 0
	}

	for _, a := range acts {
		if !catalog.IsCategory(a.Type) {
			continue
		}
		out.CarbonByCategory[a.Type] += a.CarbonImpact
		out.PointsByCategory[a.Type] += a.Points
		out.ActivityCounts[a.Type]++
		out.TotalCarbon += a.CarbonImpact
		out.TotalPoints += a.Points
	}

	sort.SliceStable(acts, func(i, j int) bool {
		return math.Abs(acts[i].CarbonImpact) > math.Abs(acts[j].CarbonImpact)
	})
	for _, a := range acts[:min(topActivitiesLimit, len(acts))] {
		desc := a.Description
		if desc == "" {
			desc = a.Action
		}
		out.TopActivities = append(out.TopActivities, TopActivity{
			Description: desc,
			Carbon:      a.CarbonImpact,
			Points:      a.Points,
			Date:        a.Date,
		})
	}
	return out, nil
}
