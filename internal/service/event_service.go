package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/repository"
	"github.com/yakoovad/eventhub/pkg/logger"
	"go.uber.org/zap"
)

type EventService struct {
	events repository.EventRepository
}

func NewEventService() *EventService {
	return &EventService{}
}

func (s *EventService) ListEvents(ctx context.Context) ([]*model.Event, *Error) {
	events, err := s.events.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list events", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to list events")
	}
	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, id int64) (*model.Event, *Error) {
	event, err := s.events.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		logger.FromContext(ctx).Warn("event not found", zap.Int64("event_id", id))
		return nil, ErrEventNotFound()
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to get event", zap.Int64("event_id", id), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get event")
	}
	return event, nil
}

// CreateEvent stores event on behalf of creator. Role checks happen in the transport layer.
func (s *EventService) CreateEvent(ctx context.Context, creator *model.User, event *model.Event) (*model.Event, *Error) {
	l := logger.FromContext(ctx)
	l.Info("creating event", zap.String("title", event.Title), zap.Int64("creator_id", creator.ID))

	if event.EndDate.Before(event.StartDate) {
		return nil, NewValidationError(map[string]string{"endDate": "endDate must not be before startDate"})
	}

	event.CreatorID = creator.ID

	if err := s.events.Create(ctx, event); err != nil {
		l.Error("failed to create event", zap.String("title", event.Title), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to create event")
	}

	l.Debug("event created", zap.Int64("event_id", event.ID))

	return event, nil
}

func (s *EventService) WithEventRepo(r repository.EventRepository) *EventService {
	s.events = r
	return s
}
