package service

import (
	"context"
	"time"

	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/repository"
	"github.com/yakoovad/eventhub/pkg/logger"
	"go.uber.org/zap"
)

// AnalyticsService aggregates events and registrations for the dashboard charts.
type AnalyticsService struct {
	events        repository.EventRepository
	registrations repository.RegistrationRepository

	now func() time.Time
}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{now: time.Now}
}

func (a *AnalyticsService) Summary(ctx context.Context, viewer *model.User) (*model.Analytics, *Error) {
	l := logger.FromContext(ctx)

	events, err := a.events.List(ctx)
	if err != nil {
		l.Error("failed to list events", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to build analytics")
	}

	regs, err := a.registrations.List(ctx)
	if err != nil {
		l.Error("failed to list registrations", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to build analytics")
	}

	now := a.now()
	perEvent := make(map[int64]int, len(events))
	res := &model.Analytics{
		TotalEvents:         len(events),
		ParticipantsByEvent: make([]*model.EventParticipants, 0, len(events)),
	}

	for _, reg := range regs {
		perEvent[reg.EventID]++
		if reg.IsTeam() {
			res.RegistrationTypes.Team++
		} else {
			res.RegistrationTypes.Individual++
		}
	}

	for _, e := range events {
		if e.CreatorID == viewer.ID {
			res.MyEvents++
		}
		if e.IsUpcoming(now) {
			res.UpcomingEvents++
		}
		res.ParticipantsByEvent = append(res.ParticipantsByEvent, &model.EventParticipants{
			EventID:      e.ID,
			Title:        e.Title,
			Participants: perEvent[e.ID],
		})
	}

	return res, nil
}

func (a *AnalyticsService) WithEventRepo(r repository.EventRepository) *AnalyticsService {
	a.events = r
	return a
}

func (a *AnalyticsService) WithRegistrationRepo(r repository.RegistrationRepository) *AnalyticsService {
	a.registrations = r
	return a
}
