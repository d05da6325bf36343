package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/internal/testutil"
)

type fixture struct {
	db            *gorm.DB
	notifications *NotificationService
	interactions  *InteractionService
	social        *SocialService
	feed          *FeedService
	content       *ContentService
	search        *SearchService
	blobs         *memBlobs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	return newFixtureWith(db, repositories.NewPostgresNotificationRepository(db))
}

func newFixtureWith(db *gorm.DB, notifRepo repositories.NotificationRepository) *fixture {
	users := repositories.NewPostgresUserRepository(db)
	contents := repositories.NewPostgresContentRepository(db)
	counters := repositories.NewPostgresCounterStore(db)
	comments := repositories.NewPostgresCommentRepository(db)
	follows := repositories.NewPostgresFollowRepository(db)
	blobs := &memBlobs{objects: map[string][]byte{}}

	notifications := NewNotificationService(notifRepo, nil)
	return &fixture{
		db:            db,
		notifications: notifications,
		interactions:  NewInteractionService(counters, contents, comments, notifications),
		social:        NewSocialService(follows, users, notifications),
		feed:          NewFeedService(contents, MaxPageSize),
		content:       NewContentService(contents, counters, blobs),
		search:        NewSearchService(users, contents),
		blobs:         blobs,
	}
}

func (f *fixture) inbox(t *testing.T, userID uint) []models.NotificationDetails {
	t.Helper()
	list, err := f.notifications.ListForRecipient(context.Background(), userID)
	if err != nil {
		t.Fatalf("list notifications for %d: %v", userID, err)
	}
	return list
}

// memBlobs is an in-memory BlobStore.
type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	fail    bool
}

func (m *memBlobs) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if m.fail {
		return "", errors.New("bucket unavailable")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = buf.Bytes()
	return "https://cdn.test/" + key, nil
}

// brokenNotifications fails every write.
type brokenNotifications struct {
	repositories.NotificationRepository
}

func (brokenNotifications) CreateNotification(context.Context, *models.Notification) error {
	return errors.New("notifications table is gone")
}

// fakeIssuer signs nothing.
type fakeIssuer struct{}

func (fakeIssuer) Issue(userID uint, _ string) (string, error) {
	return fmt.Sprintf("token-%d", userID), nil
}
