package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yakoovad/eventhub/internal/model"
)

func TestAnalyticsService_Summary(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mockEventRepo := new(MockEventRepository)
	mockEventRepo.On("List", mock.Anything).Return([]*model.Event{
		{ID: 1, Title: "past", StartDate: now.Add(-48 * time.Hour), CreatorID: 10},
		{ID: 2, Title: "soon", StartDate: now.Add(24 * time.Hour), CreatorID: 10},
		{ID: 3, Title: "other", StartDate: now.Add(72 * time.Hour), CreatorID: 11},
	}, nil)

	mockRegRepo := new(MockRegistrationRepository)
	mockRegRepo.On("List", mock.Anything).Return([]*model.Registration{
		{ID: 4, EventID: 2, UserID: 20},
		{ID: 5, EventID: 2, UserID: 21, TeamID: int64Ptr(8)},
		{ID: 6, EventID: 3, UserID: 20},
	}, nil)

	service := NewAnalyticsService().
		WithEventRepo(mockEventRepo).
		WithRegistrationRepo(mockRegRepo)
	service.now = func() time.Time { return now }

	got, err := service.Summary(context.Background(), &model.User{ID: 10, Role: model.RoleOrganizer})
	require.Nil(t, err)

	assert.Equal(t, 3, got.TotalEvents)
	assert.Equal(t, 2, got.MyEvents)
	assert.Equal(t, 2, got.UpcomingEvents)
	assert.Equal(t, 2, got.RegistrationTypes.Individual)
	assert.Equal(t, 1, got.RegistrationTypes.Team)
	assert.Equal(t, []*model.EventParticipants{
		{EventID: 1, Title: "past", Participants: 0},
		{EventID: 2, Title: "soon", Participants: 2},
		{EventID: 3, Title: "other", Participants: 1},
	}, got.ParticipantsByEvent)
}

func TestAnalyticsService_SummaryFailure(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	mockEventRepo.On("List", mock.Anything).Return(nil, errors.New("db error"))

	service := NewAnalyticsService().
		WithEventRepo(mockEventRepo).
		WithRegistrationRepo(new(MockRegistrationRepository))

	got, err := service.Summary(context.Background(), &model.User{ID: 10})
	assert.Nil(t, got)
	if assert.NotNil(t, err) {
		assert.Equal(t, ErrorCodeUnspecified, err.Code)
	}
}
