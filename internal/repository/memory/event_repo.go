package memory

import (
	"context"

	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/repository"
)

type eventRepository struct {
	s *Store
}

func NewEventRepository(s *Store) repository.EventRepository {
	return &eventRepository{s: s}
}

func (r *eventRepository) Create(_ context.Context, event *model.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	event.ID = r.s.nextID()
	stored := *event
	r.s.events[event.ID] = &stored
	return nil
}

func (r *eventRepository) Get(_ context.Context, id int64) (*model.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *e
	return &c, nil
}

func (r *eventRepository) List(_ context.Context) ([]*model.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return values(r.s.events, func(e *model.Event) int64 { return e.ID }, nil), nil
}
