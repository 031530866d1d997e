package repository

import (
	"context"

	"github.com/yakoovad/eventhub/internal/model"
)

// Create methods assign the next identifier and write it back into the passed record.

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Get(ctx context.Context, id int64) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
}

type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	Get(ctx context.Context, id int64) (*model.Team, error)
	// GetForUpdate locks the team row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*model.Team, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*model.Team, error)
	AddMember(ctx context.Context, member *model.TeamMember) error
	GetMembers(ctx context.Context, teamID int64) ([]*model.TeamMember, error)
}

type RegistrationRepository interface {
	Create(ctx context.Context, registration *model.Registration) error
	List(ctx context.Context) ([]*model.Registration, error)
}
