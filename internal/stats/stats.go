// Package stats tracks per-day completion counts and focus minutes, caches
// them locally and mirrors them to the remote store. Counters only grow
// across devices, so merging takes the per-day maximum.
package stats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"focusdo/internal/remote"
)

const dayFormat = "2006-01-02"

type dayStat struct {
	Day          string `gorm:"primaryKey"`
	Completions  int
	FocusMinutes int
	UpdatedAt    time.Time
}

func (dayStat) TableName() string { return "day_stats" }

// Service owns the statistics counters.
type Service struct {
	db     *gorm.DB
	remote remote.Store
	log    zerolog.Logger

	mu sync.Mutex
}

func NewService(db *gorm.DB, r remote.Store, log zerolog.Logger) (*Service, error) {
	if err := db.AutoMigrate(&dayStat{}); err != nil {
		return nil, fmt.Errorf("migrate stats: %w", err)
	}
	return &Service{
		db:     db,
		remote: r,
		log:    log.With().Str("component", "stats").Logger(),
	}, nil
}

// RecordCompletion adjusts the completion counter for the given day. The
// counter never drops below zero.
func (s *Service) RecordCompletion(day time.Time, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.row(day)
	row.Completions += delta
	if row.Completions < 0 {
		row.Completions = 0
	}
	s.upsert(row)
	s.pushDaily(day, row.Completions)
}

// AddFocusMinutes adds finished focus time to the given day.
func (s *Service) AddFocusMinutes(day time.Time, minutes int) {
	if minutes <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.row(day)
	row.FocusMinutes += minutes
	s.upsert(row)
	s.pushFocus(day, row.FocusMinutes)
}

// CompletionsOn reports the completion count for one day.
func (s *Service) CompletionsOn(day time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.row(day).Completions
}

// FocusMinutesOn reports the focus minutes for one day.
func (s *Service) FocusMinutesOn(day time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.row(day).FocusMinutes
}

// WeeklyProgress sums completions from the start of the week (Monday)
// through now.
func (s *Service) WeeklyProgress(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := startOfWeek(now)
	total := 0
	for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
		total += s.row(d).Completions
	}
	return total
}

// MergeRemote reconciles the last days of counters with the remote store,
// taking the per-day maximum in both directions.
func (s *Service) MergeRemote(ctx context.Context, days int) {
	if s.remote == nil {
		return
	}
	now := time.Now()
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -i)

		s.mu.Lock()
		row := s.row(day)
		s.mu.Unlock()

		remoteDaily, err := s.remote.FetchDailyStat(ctx, day)
		if err != nil {
			s.log.Debug().Err(err).Str("day", day.Format(dayFormat)).Msg("daily stat fetch failed")
			continue
		}
		remoteFocus, err := s.remote.FetchFocusStat(ctx, day)
		if err != nil {
			s.log.Debug().Err(err).Str("day", day.Format(dayFormat)).Msg("focus stat fetch failed")
			continue
		}

		s.mu.Lock()
		row = s.row(day)
		changed := false
		if remoteDaily > row.Completions {
			row.Completions = remoteDaily
			changed = true
		}
		if remoteFocus > row.FocusMinutes {
			row.FocusMinutes = remoteFocus
			changed = true
		}
		if changed {
			s.upsert(row)
		}
		completions, focus := row.Completions, row.FocusMinutes
		s.mu.Unlock()

		if completions > remoteDaily {
			s.pushDaily(day, completions)
		}
		if focus > remoteFocus {
			s.pushFocus(day, focus)
		}
	}
}

func (s *Service) row(day time.Time) dayStat {
	key := day.Format(dayFormat)
	var row dayStat
	if err := s.db.Where("day = ?", key).First(&row).Error; err != nil {
		return dayStat{Day: key}
	}
	return row
}

func (s *Service) upsert(row dayStat) {
	row.UpdatedAt = time.Now()
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"completions", "focus_minutes", "updated_at"}),
	}).Create(&row).Error; err != nil {
		s.log.Error().Err(err).Str("day", row.Day).Msg("persist stats")
	}
}

func (s *Service) pushDaily(day time.Time, count int) {
	if s.remote == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.remote.SaveDailyStat(ctx, day, count); err != nil {
			s.log.Debug().Err(err).Str("day", day.Format(dayFormat)).Msg("daily stat push failed")
		}
	}()
}

func (s *Service) pushFocus(day time.Time, minutes int) {
	if s.remote == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.remote.SaveFocusStat(ctx, day, minutes); err != nil {
			s.log.Debug().Err(err).Str("day", day.Format(dayFormat)).Msg("focus stat push failed")
		}
	}()
}

func startOfWeek(now time.Time) time.Time {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}
