package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mentorbot/internal/model"
)

type fakeReminderRepo struct {
	configs map[int64]*model.ReminderConfig
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{configs: make(map[int64]*model.ReminderConfig)}
}

func (r *fakeReminderRepo) Get(ctx context.Context, userID int64) (*model.ReminderConfig, error) {
	cfg, ok := r.configs[userID]
	if !ok {
		return nil, nil
	}
	clone := *cfg
	return &clone, nil
}

func (r *fakeReminderRepo) Put(ctx context.Context, cfg *model.ReminderConfig) error {
	clone := *cfg
	r.configs[cfg.UserID] = &clone
	return nil
}

func (r *fakeReminderRepo) Clear(ctx context.Context, userID int64) error {
	delete(r.configs, userID)
	return nil
}

func (r *fakeReminderRepo) ListEnabled(ctx context.Context) ([]*model.ReminderConfig, error) {
	var out []*model.ReminderConfig
	for _, cfg := range r.configs {
		if cfg.Enabled {
			clone := *cfg
			out = append(out, &clone)
		}
	}
	return out, nil
}

func TestCronSpec(t *testing.T) {
	cases := []struct {
		cfg  model.ReminderConfig
		want string
	}{
		{model.ReminderConfig{Days: []time.Weekday{time.Monday}, Hour: 9, Minute: 30}, "30 9 * * 1"},
		{model.ReminderConfig{Days: []time.Weekday{time.Monday, time.Wednesday, time.Friday}, Hour: 18, Minute: 0}, "0 18 * * 1,3,5"},
		{model.ReminderConfig{Days: []time.Weekday{time.Sunday}, Hour: 0, Minute: 5}, "5 0 * * 0"},
	}
	for _, tc := range cases {
		if got := CronSpec(&tc.cfg); got != tc.want {
			t.Errorf("CronSpec(%+v) = %q, want %q", tc.cfg, got, tc.want)
		}
	}
}

func TestSetRejectsBadSchedules(t *testing.T) {
	ctx := context.Background()
	svc := NewReminderService(newFakeReminderRepo(), func(int64) {})

	bad := []model.ReminderConfig{
		{UserID: 1, Enabled: true},                                                         // no days
		{UserID: 1, Enabled: true, Days: []time.Weekday{time.Monday}, Hour: 24},            // hour
		{UserID: 1, Enabled: true, Days: []time.Weekday{time.Monday}, Hour: 9, Minute: 60}, // minute
	}
	for _, cfg := range bad {
		if err := svc.Set(ctx, &cfg); !errors.Is(err, ErrBadSchedule) {
			t.Errorf("Set(%+v) = %v, want ErrBadSchedule", cfg, err)
		}
	}
}

func TestSetPersistsAndDisableKeepsSchedule(t *testing.T) {
	ctx := context.Background()
	repo := newFakeReminderRepo()
	svc := NewReminderService(repo, func(int64) {})

	cfg := &model.ReminderConfig{
		UserID:  1,
		Enabled: true,
		Days:    []time.Weekday{time.Tuesday, time.Thursday},
		Hour:    8,
		Minute:  15,
	}
	if err := svc.Set(ctx, cfg); err != nil {
		t.Fatalf("set: %v", err)
	}
	stored, _ := svc.Get(ctx, 1)
	if stored == nil || !stored.Enabled {
		t.Fatal("schedule not persisted enabled")
	}

	if err := svc.Disable(ctx, 1); err != nil {
		t.Fatalf("disable: %v", err)
	}
	stored, _ = svc.Get(ctx, 1)
	if stored == nil || stored.Enabled {
		t.Fatal("disable must persist Enabled=false")
	}
	// Days and time survive for re-enabling.
	if len(stored.Days) != 2 || stored.Hour != 8 || stored.Minute != 15 {
		t.Errorf("disable dropped the schedule: %+v", stored)
	}

	listed, _ := repo.ListEnabled(ctx)
	if len(listed) != 0 {
		t.Errorf("ListEnabled after disable = %d entries, want 0", len(listed))
	}
}

func TestStartLoadsPersistedSchedules(t *testing.T) {
	ctx := context.Background()
	repo := newFakeReminderRepo()
	repo.Put(ctx, &model.ReminderConfig{
		UserID:  1,
		Enabled: true,
		Days:    []time.Weekday{time.Monday},
		Hour:    9,
		Minute:  0,
	})
	repo.Put(ctx, &model.ReminderConfig{UserID: 2, Enabled: false})

	svc := NewReminderService(repo, func(int64) {})
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer svc.Stop()

	svc.mu.Lock()
	n := len(svc.entries)
	svc.mu.Unlock()
	if n != 1 {
		t.Errorf("scheduled entries = %d, want 1", n)
	}
}
