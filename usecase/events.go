package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/services"

	"github.com/google/uuid"
)

type EventsService struct {
	EventsRepo *repository.EventsRepo
	Scheduler  *services.ReminderScheduler
}

func NewEventsService(events *repository.EventsRepo, scheduler *services.ReminderScheduler) *EventsService {
	return &EventsService{
		EventsRepo: events,
		Scheduler:  scheduler,
	}
}

func validateEvent(e *model.Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("event title is required")
	}
	if e.StartTime.IsZero() {
		return errors.New("event start time is required")
	}
	if !e.ReminderAt.IsZero() && e.ReminderAt.After(e.StartTime) {
		return errors.New("reminder cannot be after the event starts")
	}
	return nil
}

func (svc *EventsService) CreateEvent(ctx context.Context, event *model.Event) error {
	if event.UserID == "" {
		return errors.New("user ID is required")
	}
	if err := validateEvent(event); err != nil {
		return err
	}

	now := time.Now()
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := svc.EventsRepo.CreateEvent(ctx, event); err != nil {
		return err
	}

	svc.scheduleReminder(event)
	return nil
}

func (svc *EventsService) GetUserEvents(ctx context.Context, userID string) ([]*model.Event, error) {
	return svc.EventsRepo.GetUserEvents(ctx, userID)
}

func (svc *EventsService) UpdateEvent(ctx context.Context, eventID, userID string, updates *model.Event) (*model.Event, error) {
	existing, err := svc.EventsRepo.GetEventByID(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, repository.ErrEventNotFound
	}

	if updates.Title != "" {
		existing.Title = updates.Title
	}
	if updates.Description != "" {
		existing.Description = updates.Description
	}
	if !updates.StartTime.IsZero() {
		existing.StartTime = updates.StartTime
	}
	if updates.Location != "" {
		existing.Location = updates.Location
	}
	if !updates.ReminderAt.IsZero() {
		existing.ReminderAt = updates.ReminderAt
	}

	if err := validateEvent(existing); err != nil {
		return nil, err
	}

	if err := svc.EventsRepo.UpdateEvent(ctx, eventID, userID, existing); err != nil {
		return nil, err
	}

	svc.cancelReminder(eventID)
	svc.scheduleReminder(existing)
	return existing, nil
}

func (svc *EventsService) DeleteEvent(ctx context.Context, eventID, userID string) error {
	if err := svc.EventsRepo.DeleteEvent(ctx, eventID, userID); err != nil {
		return err
	}
	svc.cancelReminder(eventID)
	return nil
}

func (svc *EventsService) scheduleReminder(event *model.Event) {
	if svc.Scheduler == nil || event.ReminderAt.IsZero() {
		return
	}
	userID, title := event.UserID, event.Title
	svc.Scheduler.ScheduleAt("event:"+event.EventID, event.ReminderAt, func() {
		svc.Scheduler.Notify(userID, title, "Upcoming event reminder")
	})
}

func (svc *EventsService) cancelReminder(eventID string) {
	if svc.Scheduler == nil {
		return
	}
	svc.Scheduler.Cancel("event:" + eventID)
}
