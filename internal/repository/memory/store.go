package memory

import (
	"cmp"
	"slices"
	"sync"

	"github.com/yakoovad/eventhub/internal/model"
)

// Store keeps every entity kind in maps for the lifetime of the process.
// Identifiers come from a single counter shared by all kinds, so ids are
// unique across the whole store and not dense within one collection.
type Store struct {
	mu     sync.RWMutex
	lastID int64

	users         map[int64]*model.User
	events        map[int64]*model.Event
	teams         map[int64]*model.Team
	members       map[int64]*model.TeamMember
	registrations map[int64]*model.Registration
}

func NewStore() *Store {
	return &Store{
		users:         make(map[int64]*model.User),
		events:        make(map[int64]*model.Event),
		teams:         make(map[int64]*model.Team),
		members:       make(map[int64]*model.TeamMember),
		registrations: make(map[int64]*model.Registration),
	}
}

// nextID must be called with mu held for writing.
func (s *Store) nextID() int64 {
	s.lastID++
	return s.lastID
}

// values returns copies sorted by id, which is insertion order.
func values[T any](m map[int64]*T, id func(*T) int64, keep func(*T) bool) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		if keep != nil && !keep(v) {
			continue
		}
		c := *v
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *T) int {
		return cmp.Compare(id(a), id(b))
	})
	return out
}
