package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/repository"
)

func TestEventService_CreateEvent(t *testing.T) {
	organizer := &model.User{ID: 1, Role: model.RoleOrganizer}
	start := time.Date(2030, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		event         *model.Event
		setupMocks    func(*MockEventRepository)
		expectedError bool
		errorCode     ErrorCode
	}{
		{
			name:  "success",
			event: &model.Event{Title: "Hack", StartDate: start, EndDate: start.Add(48 * time.Hour), MaxTeamSize: 4},
			setupMocks: func(er *MockEventRepository) {
				er.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
					return e.Title == "Hack" && e.CreatorID == 1
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Event).ID = 5
				}).Return(nil)
			},
		},
		{
			name:  "same start and end",
			event: &model.Event{Title: "Meetup", StartDate: start, EndDate: start, MaxTeamSize: 1},
			setupMocks: func(er *MockEventRepository) {
				er.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:          "end before start",
			event:         &model.Event{Title: "Hack", StartDate: start, EndDate: start.Add(-time.Hour), MaxTeamSize: 4},
			setupMocks:    func(er *MockEventRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeInvalidBody,
		},
		{
			name:  "create failure",
			event: &model.Event{Title: "Hack", StartDate: start, EndDate: start, MaxTeamSize: 4},
			setupMocks: func(er *MockEventRepository) {
				er.On("Create", mock.Anything, mock.Anything).Return(errors.New("db error"))
			},
			expectedError: true,
			errorCode:     ErrorCodeUnspecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEventRepo := new(MockEventRepository)
			tt.setupMocks(mockEventRepo)

			service := NewEventService().WithEventRepo(mockEventRepo)

			got, err := service.CreateEvent(context.Background(), organizer, tt.event)

			if tt.expectedError {
				if assert.NotNil(t, err) {
					assert.Equal(t, tt.errorCode, err.Code)
				}
				assert.Nil(t, got)
			} else {
				assert.Nil(t, err)
				assert.Equal(t, int64(1), got.CreatorID)
			}

			mockEventRepo.AssertExpectations(t)
		})
	}
}

func TestEventService_GetEvent(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	mockEventRepo.On("Get", mock.Anything, int64(1)).Return(&model.Event{ID: 1, Title: "Hack"}, nil)
	mockEventRepo.On("Get", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)
	mockEventRepo.On("Get", mock.Anything, int64(500)).Return(nil, errors.New("db error"))

	service := NewEventService().WithEventRepo(mockEventRepo)

	got, err := service.GetEvent(context.Background(), 1)
	assert.Nil(t, err)
	assert.Equal(t, "Hack", got.Title)

	_, err = service.GetEvent(context.Background(), 404)
	if assert.NotNil(t, err) {
		assert.Equal(t, ErrorCodeNotFound, err.Code)
		assert.Equal(t, "Event not found", err.Message)
	}

	_, err = service.GetEvent(context.Background(), 500)
	if assert.NotNil(t, err) {
		assert.Equal(t, ErrorCodeUnspecified, err.Code)
	}
}

func TestEventService_ListEvents(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	mockEventRepo.On("List", mock.Anything).Return([]*model.Event{}, nil)

	service := NewEventService().WithEventRepo(mockEventRepo)

	got, err := service.ListEvents(context.Background())
	assert.Nil(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
