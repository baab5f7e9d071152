package flexibility

import (
	"context"
	"errors"
)

// Flexibility is a participant's travel radius for one event, in the same
// planar unit as event coordinates.
const (
	Default = 5.0
	Min     = 0.0
	Max     = 50.0
)

var ErrOutOfRange = errors.New("flexibility must be between 0 and 50")

// Store is the persistence boundary for per-(event, participant) flexibility.
type Store interface {
	Get(ctx context.Context, eventID, userID string) (float64, bool, error)
	Set(ctx context.Context, eventID, userID string, value float64) error
	SetIfAbsent(ctx context.Context, eventID, userID string, value float64) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Update replaces a participant's flexibility. Out-of-range values are
// rejected, never clamped. The new value only affects later resolutions.
func (s *Service) Update(ctx context.Context, eventID, userID string, value float64) error {
	if value < Min || value > Max {
		return ErrOutOfRange
	}
	return s.store.Set(ctx, eventID, userID, value)
}

// Get returns the participant's flexibility, falling back to the default
// when they never set one.
func (s *Service) Get(ctx context.Context, eventID, userID string) (float64, error) {
	v, ok, err := s.store.Get(ctx, eventID, userID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return Default, nil
	}
	return v, nil
}

// Seed writes the default flexibility on a participant's first attendance
// response. An existing value is left alone.
func (s *Service) Seed(ctx context.Context, eventID, userID string) error {
	return s.store.SetIfAbsent(ctx, eventID, userID, Default)
}
