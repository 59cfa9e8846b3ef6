package favorites

import (
	"context"
	"fmt"
	"sync"

	"github.com/thirdlf03/world-holidays/internal/catalog"
	"github.com/thirdlf03/world-holidays/internal/holiday"
)

// Service holds the shared favorites list in memory and writes it through
// to the store after every mutation.
type Service struct {
	store Store

	mu   sync.Mutex
	list []holiday.Holiday
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		list:  []holiday.Holiday{},
	}
}

// Load replaces the in-memory list with the stored one.
func (s *Service) Load(ctx context.Context) error {
	list, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	s.mu.Lock()
	s.list = list
	s.mu.Unlock()
	return nil
}

func (s *Service) List() []holiday.Holiday {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneList(s.list)
}

func (s *Service) AddFromSearch(ctx context.Context, rows []catalog.SearchRow) (int, error) {
	var added int
	err := s.mutate(ctx, func(current []holiday.Holiday) []holiday.Holiday {
		var next []holiday.Holiday
		next, added = AddFromSearch(current, rows)
		return next
	})
	return added, err
}

func (s *Service) RemoveSelected(ctx context.Context, selected []holiday.Holiday) (int, error) {
	var removed int
	err := s.mutate(ctx, func(current []holiday.Holiday) []holiday.Holiday {
		var next []holiday.Holiday
		next, removed = RemoveSelected(current, selected)
		return next
	})
	return removed, err
}

func (s *Service) Clear(ctx context.Context) error {
	return s.mutate(ctx, func([]holiday.Holiday) []holiday.Holiday {
		return []holiday.Holiday{}
	})
}

func (s *Service) Grouped() []CountryGroup {
	return GroupByCountry(s.List())
}

// mutate applies change and persists the full list. The in-memory list only
// moves forward once the save succeeded.
func (s *Service) mutate(ctx context.Context, change func([]holiday.Holiday) []holiday.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := change(cloneList(s.list))
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	s.list = next
	return nil
}

func cloneList(list []holiday.Holiday) []holiday.Holiday {
	out := make([]holiday.Holiday, len(list))
	copy(out, list)
	return out
}
