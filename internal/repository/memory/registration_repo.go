package memory

import (
	"context"

	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/repository"
)

type registrationRepository struct {
	s *Store
}

func NewRegistrationRepository(s *Store) repository.RegistrationRepository {
	return &registrationRepository{s: s}
}

func (r *registrationRepository) Create(_ context.Context, registration *model.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	registration.ID = r.s.nextID()
	stored := *registration
	if registration.TeamID != nil {
		teamID := *registration.TeamID
		stored.TeamID = &teamID
	}
	r.s.registrations[registration.ID] = &stored
	return nil
}

func (r *registrationRepository) List(_ context.Context) ([]*model.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return values(r.s.registrations, func(reg *model.Registration) int64 { return reg.ID }, nil), nil
}
