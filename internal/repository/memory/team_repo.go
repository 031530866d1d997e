package memory

import (
	"context"

	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/repository"
)

type teamRepository struct {
	s *Store
}

func NewTeamRepository(s *Store) repository.TeamRepository {
	return &teamRepository{s: s}
}

func (r *teamRepository) Create(_ context.Context, team *model.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	team.ID = r.s.nextID()
	stored := *team
	r.s.teams[team.ID] = &stored
	return nil
}

func (r *teamRepository) Get(_ context.Context, id int64) (*model.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.teams[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *t
	return &c, nil
}

// GetForUpdate has no row locks to take; callers serialize through db.NewLockTransactor.
func (r *teamRepository) GetForUpdate(ctx context.Context, id int64) (*model.Team, error) {
	return r.Get(ctx, id)
}

func (r *teamRepository) ListByEvent(_ context.Context, eventID int64) ([]*model.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return values(r.s.teams,
		func(t *model.Team) int64 { return t.ID },
		func(t *model.Team) bool { return t.EventID == eventID },
	), nil
}

func (r *teamRepository) AddMember(_ context.Context, member *model.TeamMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.members {
		if m.TeamID == member.TeamID && m.UserID == member.UserID {
			return repository.ErrAlreadyExists
		}
	}

	member.ID = r.s.nextID()
	stored := *member
	r.s.members[member.ID] = &stored
	return nil
}

func (r *teamRepository) GetMembers(_ context.Context, teamID int64) ([]*model.TeamMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return values(r.s.members,
		func(m *model.TeamMember) int64 { return m.ID },
		func(m *model.TeamMember) bool { return m.TeamID == teamID },
	), nil
}
