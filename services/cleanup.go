package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ecotrack/models"

	"gorm.io/gorm"
)

// CleanupService runs background housekeeping: challenges past their end
// date are deactivated so they leave the active list and stop accepting joins.
type CleanupService struct {
	db     *gorm.DB
	clock  Clock
	logger *slog.Logger

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func NewCleanupService(db *gorm.DB, clock Clock, logger *slog.Logger) *CleanupService {
	return &CleanupService{db: db, clock: clock, logger: logger, stop: make(chan struct{})}
}

// ExpireChallenges deactivates active challenges whose end date has passed.
// Open participations keep their progress.
func (s *CleanupService) ExpireChallenges(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Challenge{}).
		Where("is_active = ? AND end_date < ?", true, s.clock.Now()).
		Update("is_active", false)
	if res.Error != nil {
		return 0, storageErr("expire challenges", res.Error)
	}
	if res.RowsAffected > 0 {
		s.logger.Info("challenges expired", slog.Int64("count", res.RowsAffected))
	}
	return res.RowsAffected, nil
}

// Start runs ExpireChallenges now and then every interval until Stop or ctx.
func (s *CleanupService) Start(ctx context.Context, interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if _, err := s.ExpireChallenges(ctx); err != nil {
				s.logger.Warn("challenge cleanup failed", slog.Any("error", err))
			}
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop ends the worker and waits for it.
func (s *CleanupService) Stop() {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
}
