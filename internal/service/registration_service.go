package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/yakoovad/eventhub/internal/db"
	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/repository"
	"github.com/yakoovad/eventhub/pkg/logger"
	"go.uber.org/zap"
)

type RegistrationService struct {
	tx db.Transactor

	events        repository.EventRepository
	teams         repository.TeamRepository
	registrations repository.RegistrationRepository
}

func NewRegistrationService(tx db.Transactor) *RegistrationService {
	return &RegistrationService{tx: tx}
}

// Register creates a pending registration for user. A non-nil teamID must
// point at a team of the same event that user leads or belongs to. The checks
// and the insert share one transaction.
func (r *RegistrationService) Register(ctx context.Context, user *model.User, eventID int64, teamID *int64) (*model.Registration, *Error) {
	l := logger.FromContext(ctx)
	l.Info("registering for event", zap.Int64("event_id", eventID), zap.Int64("user_id", user.ID))

	reg := &model.Registration{
		EventID: eventID,
		UserID:  user.ID,
		TeamID:  teamID,
		Status:  model.RegistrationStatusPending,
	}

	err := r.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, err := r.events.Get(txCtx, eventID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrEventNotFound()
		case err != nil:
			l.Error("failed to get event", zap.Int64("event_id", eventID), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to get event")
		}

		if teamID != nil {
			if serr := r.checkTeam(txCtx, user, eventID, *teamID); serr != nil {
				return serr
			}
		}

		if err = r.registrations.Create(txCtx, reg); err != nil {
			l.Error("failed to create registration", zap.Int64("event_id", eventID), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to register")
		}
		return nil
	})
	if serr := asServiceError(err); serr != nil {
		return nil, serr
	}

	l.Debug("registration created", zap.Int64("registration_id", reg.ID))

	return reg, nil
}

func (r *RegistrationService) checkTeam(ctx context.Context, user *model.User, eventID, teamID int64) *Error {
	l := logger.FromContext(ctx)

	team, err := r.teams.Get(ctx, teamID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrTeamNotFound()
	case err != nil:
		l.Error("failed to get team", zap.Int64("team_id", teamID), zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to get team")
	}
	if team.EventID != eventID {
		return ErrTeamNotFound()
	}

	members, err := r.teams.GetMembers(ctx, teamID)
	if err != nil {
		l.Error("failed to get team members", zap.Int64("team_id", teamID), zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to get team members")
	}
	if !team.HasMember(user.ID, members) {
		return NewError(ErrorCodeForbidden, "You are not a member of this team").WithKey("not_team_member")
	}
	return nil
}

func (r *RegistrationService) ListRegistrations(ctx context.Context) ([]*model.Registration, *Error) {
	regs, err := r.registrations.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list registrations", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to list registrations")
	}
	return regs, nil
}

func (r *RegistrationService) WithEventRepo(repo repository.EventRepository) *RegistrationService {
	r.events = repo
	return r
}

func (r *RegistrationService) WithTeamRepo(repo repository.TeamRepository) *RegistrationService {
	r.teams = repo
	return r
}

func (r *RegistrationService) WithRegistrationRepo(repo repository.RegistrationRepository) *RegistrationService {
	r.registrations = repo
	return r
}
