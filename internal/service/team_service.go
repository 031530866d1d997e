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

type TeamService struct {
	tx db.Transactor

	events repository.EventRepository
	teams  repository.TeamRepository
}

func NewTeamService(tx db.Transactor) *TeamService {
	return &TeamService{
		tx: tx,
	}
}

func (t *TeamService) CreateTeam(ctx context.Context, leader *model.User, eventID int64, name string) (*model.Team, *Error) {
	l := logger.FromContext(ctx)
	l.Info("creating team", zap.String("team_name", name), zap.Int64("event_id", eventID))

	if _, serr := t.getEvent(ctx, eventID); serr != nil {
		return nil, serr
	}

	team := &model.Team{
		Name:     name,
		EventID:  eventID,
		LeaderID: leader.ID,
	}
	if err := t.teams.Create(ctx, team); err != nil {
		l.Error("failed to create team", zap.String("team_name", name), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to create team")
	}

	l.Debug("team created", zap.Int64("team_id", team.ID))

	return team, nil
}

// ListTeams returns an empty list for unknown events.
func (t *TeamService) ListTeams(ctx context.Context, eventID int64) ([]*model.Team, *Error) {
	teams, err := t.teams.ListByEvent(ctx, eventID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list teams", zap.Int64("event_id", eventID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to list teams")
	}
	return teams, nil
}

// JoinTeam adds user to the team. The leader occupies one seat, so a team is
// full once 1 + len(members) reaches the event's maxTeamSize.
func (t *TeamService) JoinTeam(ctx context.Context, user *model.User, eventID, teamID int64) (*model.TeamMember, *Error) {
	l := logger.FromContext(ctx)
	l.Info("joining team", zap.Int64("team_id", teamID), zap.Int64("event_id", eventID), zap.Int64("user_id", user.ID))

	member := &model.TeamMember{TeamID: teamID, UserID: user.ID}

	err := t.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		team, err := t.teams.GetForUpdate(txCtx, teamID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrTeamNotFound()
		case err != nil:
			l.Error("failed to get team", zap.Int64("team_id", teamID), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to get team")
		}

		if team.EventID != eventID {
			l.Warn("team belongs to another event", zap.Int64("team_id", teamID), zap.Int64("team_event_id", team.EventID))
			return ErrTeamNotFound()
		}

		event, serr := t.getEvent(txCtx, eventID)
		if serr != nil {
			return serr
		}

		members, err := t.teams.GetMembers(txCtx, teamID)
		if err != nil {
			l.Error("failed to get team members", zap.Int64("team_id", teamID), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to get team members")
		}

		if team.HasMember(user.ID, members) {
			return errAlreadyMember()
		}

		if 1+len(members) >= event.MaxTeamSize {
			l.Warn("team is full", zap.Int64("team_id", teamID), zap.Int("max_team_size", event.MaxTeamSize))
			return NewError(ErrorCodeTeamFull, "Team is full").WithKey("team_full")
		}

		err = t.teams.AddMember(txCtx, member)
		switch {
		case errors.Is(err, repository.ErrAlreadyExists):
			return errAlreadyMember()
		case err != nil:
			l.Error("failed to add team member", zap.Int64("team_id", teamID), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to join team")
		}

		l.Debug("team joined", zap.Int64("member_id", member.ID))

		return nil
	})
	if serr := asServiceError(err); serr != nil {
		return nil, serr
	}

	return member, nil
}

func (t *TeamService) ListMembers(ctx context.Context, eventID, teamID int64) ([]*model.TeamMember, *Error) {
	l := logger.FromContext(ctx)

	team, err := t.teams.Get(ctx, teamID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrTeamNotFound()
	case err != nil:
		l.Error("failed to get team", zap.Int64("team_id", teamID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get team")
	}
	if team.EventID != eventID {
		return nil, ErrTeamNotFound()
	}

	members, err := t.teams.GetMembers(ctx, teamID)
	if err != nil {
		l.Error("failed to get team members", zap.Int64("team_id", teamID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get team members")
	}
	return members, nil
}

func (t *TeamService) getEvent(ctx context.Context, eventID int64) (*model.Event, *Error) {
	event, err := t.events.Get(ctx, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEventNotFound()
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to get event", zap.Int64("event_id", eventID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get event")
	}
	return event, nil
}

func (t *TeamService) WithEventRepo(r repository.EventRepository) *TeamService {
	t.events = r
	return t
}

func (t *TeamService) WithTeamRepo(r repository.TeamRepository) *TeamService {
	t.teams = r
	return t
}

func errAlreadyMember() *Error {
	return NewError(ErrorCodeAlreadyMember, "You are already in this team").WithKey("already_member")
}

// asServiceError unwraps a *Error returned through a Transactor. Any other
// error (begin/commit failures) becomes UNSPECIFIED.
func asServiceError(err error) *Error {
	if err == nil {
		return nil
	}
	var res *Error
	if errors.As(err, &res) {
		return res
	}
	return NewError(ErrorCodeUnspecified, "transaction failed")
}
