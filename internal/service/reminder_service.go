package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"mentorbot/internal/model"
	"mentorbot/internal/repository"
)

// ErrBadSchedule is returned for schedules with no days or an out-of-range
// time.
var ErrBadSchedule = errors.New("invalid reminder schedule")

// ReminderService keeps one cron entry per user with an enabled weekly
// reminder and fires the notify callback at the scheduled times. Schedules
// survive restarts; Start reloads them from the repository.
type ReminderService struct {
	repo   repository.ReminderRepo
	notify func(userID int64)

	mu      sync.Mutex
	cron    *cron.Cron
	entries map[int64]cron.EntryID
}

func NewReminderService(repo repository.ReminderRepo, notify func(userID int64)) *ReminderService {
	return &ReminderService{
		repo:    repo,
		notify:  notify,
		cron:    cron.New(),
		entries: make(map[int64]cron.EntryID),
	}
}

// Start loads every enabled schedule and begins dispatching.
func (s *ReminderService) Start(ctx context.Context) error {
	configs, err := s.repo.ListEnabled(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cfg := range configs {
		if err := s.scheduleLocked(cfg); err != nil {
			log.Printf("[ReminderService] skipping bad schedule for user %d: %v", cfg.UserID, err)
		}
	}
	s.cron.Start()
	log.Printf("[ReminderService] started with %d schedules", len(s.entries))
	return nil
}

// Stop halts dispatching and waits for any running notification.
func (s *ReminderService) Stop() {
	<-s.cron.Stop().Done()
}

// Set validates, persists and activates a schedule. A disabled config is
// persisted and unscheduled.
func (s *ReminderService) Set(ctx context.Context, cfg *model.ReminderConfig) error {
	if cfg.Enabled {
		if len(cfg.Days) == 0 || cfg.Hour < 0 || cfg.Hour > 23 || cfg.Minute < 0 || cfg.Minute > 59 {
			return ErrBadSchedule
		}
	}
	cfg.UpdatedAt = time.Now()
	if err := s.repo.Put(ctx, cfg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.unscheduleLocked(cfg.UserID)
	if cfg.Enabled {
		return s.scheduleLocked(cfg)
	}
	return nil
}

// Disable turns the user's reminder off, keeping the stored days and time
// so re-enabling restores them.
func (s *ReminderService) Disable(ctx context.Context, userID int64) error {
	cfg, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	cfg.Enabled = false
	return s.Set(ctx, cfg)
}

// Get returns the stored schedule or nil when the user has none.
func (s *ReminderService) Get(ctx context.Context, userID int64) (*model.ReminderConfig, error) {
	return s.repo.Get(ctx, userID)
}

func (s *ReminderService) scheduleLocked(cfg *model.ReminderConfig) error {
	userID := cfg.UserID
	id, err := s.cron.AddFunc(CronSpec(cfg), func() {
		s.notify(userID)
	})
	if err != nil {
		return err
	}
	s.entries[userID] = id
	return nil
}

func (s *ReminderService) unscheduleLocked(userID int64) {
	if id, ok := s.entries[userID]; ok {
		s.cron.Remove(id)
		delete(s.entries, userID)
	}
}

// CronSpec renders the weekly schedule as a standard five-field cron
// expression, e.g. "30 9 * * 1,3,5".
func CronSpec(cfg *model.ReminderConfig) string {
	days := make([]string, 0, len(cfg.Days))
	for _, d := range cfg.Days {
		days = append(days, strconv.Itoa(int(d)))
	}
	return fmt.Sprintf("%d %d * * %s", cfg.Minute, cfg.Hour, strings.Join(days, ","))
}
