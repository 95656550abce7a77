// Package store is the mutation coordinator: the single layer through
// which the client reads and writes application data. Reads go through
// the entity caches and only hit the network when the cached data is
// stale; writes call the backend and settle the caches afterwards, with
// the important-flag toggle applied optimistically.
package store

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/mkravets/linkjournal/internal/apperr"
	"github.com/mkravets/linkjournal/internal/client/cache"
	"github.com/mkravets/linkjournal/internal/client/transport"
	"github.com/mkravets/linkjournal/internal/logging"
	"github.com/mkravets/linkjournal/internal/models"
)

// UncategorizedName is rendered for journals whose topic no longer
// exists. Topic deletion does not cascade, so dangling topic ids are a
// normal state, not an error.
const UncategorizedName = "Uncategorized"

// Store coordinates the topic and journal caches with the backend.
// Safe for concurrent use; concurrent mutations settle last-wins.
type Store struct {
	client   transport.Client
	logger   logging.Logger
	topics   *cache.Cache[models.Topic]
	journals *cache.Cache[models.Journal]

	mu   sync.RWMutex
	user *models.User
}

func New(client transport.Client, logger logging.Logger) *Store {
	return &Store{
		client:   client,
		logger:   logger,
		topics:   cache.New[models.Topic](),
		journals: cache.New[models.Journal](),
	}
}

// SubscribeTopics registers fn for changes behind the given topic tag.
func (s *Store) SubscribeTopics(tag cache.Tag, fn func()) func() {
	return s.topics.Subscribe(tag, fn)
}

// SubscribeJournals registers fn for changes behind the given journal tag.
func (s *Store) SubscribeJournals(tag cache.Tag, fn func()) func() {
	return s.journals.Subscribe(tag, fn)
}

// Topics returns the full topic listing, from cache when fresh.
func (s *Store) Topics(ctx context.Context) ([]models.Topic, error) {
	if items, ok := s.topics.Collection(cache.All); ok {
		return items, nil
	}
	items, err := s.client.ListTopics(ctx)
	if err != nil {
		return nil, err
	}
	s.topics.SetCollection(cache.All, items)
	return items, nil
}

// Topic returns one topic, from cache when fresh.
func (s *Store) Topic(ctx context.Context, id string) (models.Topic, error) {
	if item, ok := s.topics.GetFresh(id); ok {
		return item, nil
	}
	item, err := s.client.GetTopic(ctx, id)
	if err != nil {
		return models.Topic{}, err
	}
	s.topics.SetOne(item)
	return item, nil
}

// Journals returns the full journal listing, from cache when fresh.
func (s *Store) Journals(ctx context.Context) ([]models.Journal, error) {
	if items, ok := s.journals.Collection(cache.All); ok {
		return items, nil
	}
	items, err := s.client.ListJournals(ctx)
	if err != nil {
		return nil, err
	}
	s.journals.SetCollection(cache.All, items)
	return items, nil
}

// JournalsByTopic returns the journals of one topic, from cache when fresh.
func (s *Store) JournalsByTopic(ctx context.Context, topicID string) ([]models.Journal, error) {
	col := cache.ForTopic(topicID)
	if items, ok := s.journals.Collection(col); ok {
		return items, nil
	}
	items, err := s.client.ListJournalsByTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	s.journals.SetCollection(col, items)
	return items, nil
}

// Journal returns one journal, from cache when fresh.
func (s *Store) Journal(ctx context.Context, id string) (models.Journal, error) {
	if item, ok := s.journals.GetFresh(id); ok {
		return item, nil
	}
	item, err := s.client.GetJournal(ctx, id)
	if err != nil {
		return models.Journal{}, err
	}
	s.journals.SetOne(item)
	return item, nil
}

// TopicName resolves a topic id to a display name using only cached
// data. Unknown or empty ids render as UncategorizedName.
func (s *Store) TopicName(topicID string) string {
	if topicID == "" {
		return UncategorizedName
	}
	if t, ok := s.topics.Get(topicID); ok {
		return t.Name
	}
	return UncategorizedName
}

// CreateTopic creates a topic on the backend. No optimistic insert: the
// listing is invalidated and re-fetched on the next read.
func (s *Store) CreateTopic(ctx context.Context, name string) (models.Topic, error) {
	created, err := s.client.CreateTopic(ctx, models.CreateTopicRequest{Name: name})
	if err != nil {
		return models.Topic{}, err
	}
	s.topics.Invalidate(cache.ListTag(cache.All))
	s.topics.SetOne(created)
	return created, nil
}

// RenameTopic renames a topic and invalidates both the entity and the
// listing.
func (s *Store) RenameTopic(ctx context.Context, id, name string) error {
	if err := s.client.UpdateTopic(ctx, id, models.UpdateTopicRequest{Name: name}); err != nil {
		return err
	}
	s.topics.Invalidate(cache.EntityTag(id), cache.ListTag(cache.All))
	return nil
}

// DeleteTopic deletes a topic. Journals keep their topic id; readers see
// them as uncategorized from then on.
func (s *Store) DeleteTopic(ctx context.Context, id string) error {
	if err := s.client.DeleteTopic(ctx, id); err != nil {
		return err
	}
	s.topics.Remove(id)
	s.topics.Invalidate(cache.ListTag(cache.All))
	return nil
}

// CreateJournal creates a journal. The full listing and the target
// topic's listing are invalidated.
func (s *Store) CreateJournal(ctx context.Context, req models.CreateJournalRequest) (models.Journal, error) {
	created, err := s.client.CreateJournal(ctx, req)
	if err != nil {
		return models.Journal{}, err
	}
	s.journals.Invalidate(cache.ListTag(cache.All), cache.ListTag(cache.ForTopic(created.TopicID)))
	s.journals.SetOne(created)
	return created, nil
}

// UpdateJournal edits a journal. The entity tag stales every cached
// collection containing it; a topic move additionally stales the
// destination topic's listing.
func (s *Store) UpdateJournal(ctx context.Context, id string, req models.UpdateJournalRequest) error {
	if err := s.client.UpdateJournal(ctx, id, req); err != nil {
		return err
	}
	tags := []cache.Tag{cache.EntityTag(id), cache.ListTag(cache.All)}
	if req.TopicID != nil {
		tags = append(tags, cache.ListTag(cache.ForTopic(*req.TopicID)))
	}
	s.journals.Invalidate(tags...)
	return nil
}

// DeleteJournal deletes a journal and drops it from the cache so no read
// path can serve it afterwards.
func (s *Store) DeleteJournal(ctx context.Context, id string) error {
	if err := s.client.DeleteJournal(ctx, id); err != nil {
		return err
	}
	s.journals.Remove(id)
	s.journals.Invalidate(cache.ListTag(cache.All))
	return nil
}

// ToggleImportant flips the important flag optimistically: the cached
// entity is patched before the request goes out, the patch is reverted
// exactly once if the request fails, and on success the server's value
// is applied and the entity invalidated so readers reconcile.
func (s *Store) ToggleImportant(ctx context.Context, id string) (bool, error) {
	undo, patched := s.journals.Update(id, func(j *models.Journal) {
		j.IsImportant = !j.IsImportant
	})

	isImportant, err := s.client.ToggleImportant(ctx, id)
	if err != nil {
		if patched {
			undo()
		}
		return false, err
	}

	if patched {
		s.journals.Update(id, func(j *models.Journal) {
			j.IsImportant = isImportant
		})
	}
	s.journals.Invalidate(cache.EntityTag(id))
	return isImportant, nil
}

// Profile returns the backend profile, cached after the first fetch.
func (s *Store) Profile(ctx context.Context) (models.User, error) {
	s.mu.RLock()
	cached := s.user
	s.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	user, err := s.client.Profile(ctx)
	if err != nil {
		return models.User{}, err
	}
	s.setUser(user)
	return user, nil
}

// SyncUser pushes the identity-provider account to the backend. The call
// runs on every sign-in, so a conflict for an already-synced account is
// benign: the existing profile is fetched and returned instead.
func (s *Store) SyncUser(ctx context.Context, req models.SignupRequest) (models.User, error) {
	user, err := s.client.Signup(ctx, req)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.StatusCode == http.StatusConflict {
			s.logger.Debug(ctx, "account already synced", "uid", req.FirebaseUID)
			return s.Profile(ctx)
		}
		return models.User{}, err
	}
	s.setUser(user)
	return user, nil
}

// UpdateAvatar stores a new profile picture URL and refreshes the cached
// profile.
func (s *Store) UpdateAvatar(ctx context.Context, pictureURL string) (string, error) {
	stored, err := s.client.UpdateAvatar(ctx, models.UpdateAvatarRequest{ProfilePicture: pictureURL})
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	if s.user != nil {
		s.user.ProfilePicture = stored
	}
	s.mu.Unlock()
	return stored, nil
}

// ClearUser drops the cached profile, e.g. on sign-out.
func (s *Store) ClearUser() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

func (s *Store) setUser(user models.User) {
	s.mu.Lock()
	u := user
	s.user = &u
	s.mu.Unlock()
}
