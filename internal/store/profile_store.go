package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/ai-manager/internal/model"
)

// ProfileKey is the fixed document key the aggregate is persisted under.
const ProfileKey = "userProfile"

// ProfileStore owns the single persisted aggregate: the user profile and
// its task, action, event, and text-input collections. Every mutation is
// followed by a synchronous whole-aggregate save.
//
// The mutex makes read views safe against the notification watcher's
// periodic scans; the stores themselves are driven sequentially.
type ProfileStore struct {
	mu      sync.Mutex
	repo    Repository
	profile model.UserProfile
	now     func() time.Time
}

// NewProfileStore creates a ProfileStore with compiled-in defaults,
// backed by the given repository.
func NewProfileStore(repo Repository) *ProfileStore {
	return &ProfileStore{
		repo:    repo,
		profile: model.DefaultProfile(),
		now:     time.Now,
	}
}

// Load reads the persisted aggregate, overwriting in-memory fields with
// whatever the document contains. Fields absent from the document keep
// their current in-memory values (a shallow overwrite, not a deep merge).
// When no prior save exists, Load is a no-op and defaults remain.
func (s *ProfileStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.Get(ctx, ProfileKey, &s.profile)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("loading profile: %w", err)
	}
	return nil
}

// Save serializes the entire aggregate and writes it synchronously.
func (s *ProfileStore) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *ProfileStore) saveLocked(ctx context.Context) error {
	if err := s.repo.Set(ctx, ProfileKey, s.profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// ProfilePatch carries a partial profile update. Nil fields are left
// untouched.
type ProfilePatch struct {
	Name        *string
	Email       *string
	Bio         *string
	Avatar      *string
	Preferences *model.Preferences
	Settings    *model.Settings
}

// Update shallow-merges the patch into the live aggregate and saves.
func (s *ProfileStore) Update(ctx context.Context, patch ProfilePatch) error {
	if patch.Email != nil && !model.ValidEmail(*patch.Email) {
		return fmt.Errorf("invalid email address %q", *patch.Email)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Name != nil {
		s.profile.Name = *patch.Name
	}
	if patch.Email != nil {
		s.profile.Email = *patch.Email
	}
	if patch.Bio != nil {
		s.profile.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		s.profile.Avatar = *patch.Avatar
	}
	if patch.Preferences != nil {
		s.profile.Preferences = *patch.Preferences
	}
	if patch.Settings != nil {
		s.profile.Settings = *patch.Settings
	}

	return s.saveLocked(ctx)
}

// Profile returns a snapshot copy of the aggregate. Collections are
// cloned so callers cannot mutate stored state behind the repository.
func (s *ProfileStore) Profile() model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profile
	p.Events = append([]model.CalendarEvent(nil), s.profile.Events...)
	p.TextInputs = append([]model.TextInput(nil), s.profile.TextInputs...)
	p.Actions = append([]model.Action(nil), s.profile.Actions...)
	p.Tasks = append([]model.Task(nil), s.profile.Tasks...)
	return p
}

// AddEvent appends a calendar event, generating its ID and creation
// timestamp, and saves.
func (s *ProfileStore) AddEvent(ctx context.Context, event model.CalendarEvent) (model.CalendarEvent, error) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = s.now().UTC()

	err := s.mutate(ctx, func(p *model.UserProfile) {
		p.Events = append(p.Events, event)
	})
	if err != nil {
		return model.CalendarEvent{}, err
	}
	return event, nil
}

// RemoveEvent deletes an event by ID. Removing a nonexistent event is a
// no-op.
func (s *ProfileStore) RemoveEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.profile.Events[:0]
	found := false
	for _, e := range s.profile.Events {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return nil
	}

	s.profile.Events = kept
	return s.saveLocked(ctx)
}

// EventsOn returns the events falling on the given calendar day.
func (s *ProfileStore) EventsOn(day time.Time) []model.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []model.CalendarEvent
	for _, e := range s.profile.Events {
		if e.SameDay(day) {
			events = append(events, e)
		}
	}
	return events
}

// UpcomingEvents returns up to limit events on or after today, ordered by
// date ascending.
func (s *ProfileStore) UpcomingEvents(limit int) []model.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var upcoming []model.CalendarEvent
	for _, e := range s.profile.Events {
		if !e.Date.Before(today) {
			upcoming = append(upcoming, e)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// AddTextInput records a raw text submission in the conversion history
// and saves.
func (s *ProfileStore) AddTextInput(ctx context.Context, text string) (model.TextInput, error) {
	input := model.TextInput{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: s.now().UTC(),
	}

	err := s.mutate(ctx, func(p *model.UserProfile) {
		p.TextInputs = append(p.TextInputs, input)
	})
	if err != nil {
		return model.TextInput{}, err
	}
	return input, nil
}

// mutate applies fn to the aggregate under the lock, then saves.
func (s *ProfileStore) mutate(ctx context.Context, fn func(*model.UserProfile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.profile)
	return s.saveLocked(ctx)
}
