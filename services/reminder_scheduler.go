package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Notifier delivers a reminder to a user. The default implementation just
// logs; a push or email backend can be dropped in behind the same interface.
type Notifier interface {
	Notify(userID, title, message string)
}

type LogNotifier struct{}

func (LogNotifier) Notify(userID, title, message string) {
	log.Printf("[reminder] user=%s title=%q %s", userID, title, message)
}

// ReminderScheduler runs daily habit reminders on a cron schedule and
// one-shot event reminders on timers. Keys are caller-chosen identifiers so
// reminders can be replaced or cancelled when their source changes.
type ReminderScheduler struct {
	cron     *cron.Cron
	notifier Notifier

	mu      sync.Mutex
	entries map[string]cron.EntryID
	timers  map[string]*time.Timer
}

func NewReminderScheduler(loc *time.Location, notifier Notifier) *ReminderScheduler {
	if loc == nil {
		loc = time.Local
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &ReminderScheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		notifier: notifier,
		entries:  make(map[string]cron.EntryID),
		timers:   make(map[string]*time.Timer),
	}
}

func (s *ReminderScheduler) Start() {
	s.cron.Start()
}

func (s *ReminderScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, timer := range s.timers {
		timer.Stop()
		delete(s.timers, key)
	}
}

func (s *ReminderScheduler) Notify(userID, title, message string) {
	s.notifier.Notify(userID, title, message)
}

// ScheduleDaily registers job to fire every day at the given "HH:MM" local
// time, replacing any reminder previously registered under key.
func (s *ReminderScheduler) ScheduleDaily(key, timeOfDay string, job func()) error {
	spec, err := buildDailySpec(timeOfDay)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[key]; ok {
		s.cron.Remove(id)
		delete(s.entries, key)
	}

	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	s.entries[key] = id
	return nil
}

// ScheduleAt registers job to fire once at the given instant, replacing any
// reminder previously registered under key. Instants in the past are ignored.
func (s *ReminderScheduler) ScheduleAt(key string, at time.Time, job func()) {
	delay := time.Until(at)
	if delay <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[key]; ok {
		timer.Stop()
	}
	s.timers[key] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()
		job()
	})
}

// Cancel removes the reminder registered under key, whether daily or one-shot.
func (s *ReminderScheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[key]; ok {
		s.cron.Remove(id)
		delete(s.entries, key)
	}
	if timer, ok := s.timers[key]; ok {
		timer.Stop()
		delete(s.timers, key)
	}
}

// buildDailySpec converts "HH:MM" into a standard 5-field cron spec.
func buildDailySpec(timeOfDay string) (string, error) {
	parts := strings.Split(timeOfDay, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid reminder time %q, expected HH:MM", timeOfDay)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid reminder hour %q", parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid reminder minute %q", parts[1])
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
