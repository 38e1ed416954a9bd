package services_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"community-messaging/cache"
	"community-messaging/domain/messaging"
	"community-messaging/mocks"
	"community-messaging/moderation"
	"community-messaging/observability"
	"community-messaging/repositories"
	"community-messaging/services"
	"community-messaging/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// svcFixture runs the services against a real throwaway database. Only the
// user directory is mocked: it is the one true external dependency.
type svcFixture struct {
	directory    *mocks.MockIUserDirectory
	users        map[uuid.UUID]messaging.UserProfile
	participants *cache.ParticipantCache
	metrics      *observability.MonitoringManager

	repoConvs    repositories.IConversationRepository
	repoMsgs     repositories.IMessageRepository
	repoReceipts repositories.IReadReceiptRepository

	access   services.IAccessControl
	convs    services.IConversationService
	msgs     services.IMessageService
	receipts services.IReadReceiptService
}

func newSvcFixture(t *testing.T, censoredWords ...string) *svcFixture {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "messaging.db"), 2*time.Second)
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	participants, err := cache.NewParticipantCache(16, log)
	require.NoError(t, err)

	filter, err := moderation.NewFilter(censoredWords, '*')
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	f := &svcFixture{
		directory:    mocks.NewMockIUserDirectory(ctrl),
		users:        map[uuid.UUID]messaging.UserProfile{},
		participants: participants,
		metrics:      observability.NewMonitoringManager(log),
		repoConvs:    repositories.NewConversationRepository(db, log),
		repoMsgs:     repositories.NewMessageRepository(db, log),
		repoReceipts: repositories.NewReadReceiptRepository(db, log),
	}

	// Resolve directory lookups from the fixture's registered users, like
	// the real directory would.
	f.directory.EXPECT().Profiles(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]messaging.UserProfile, error) {
			out := map[uuid.UUID]messaging.UserProfile{}
			for _, id := range ids {
				if profile, ok := f.users[id]; ok {
					out[id] = profile
				}
			}
			return out, nil
		}).AnyTimes()
	f.directory.EXPECT().Profile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id uuid.UUID) (messaging.UserProfile, error) {
			return f.users[id], nil
		}).AnyTimes()

	f.access = services.NewAccessControl(participants, f.repoConvs, f.metrics, log)
	f.convs = services.NewConversationService(
		f.access, f.repoConvs, f.repoMsgs, f.repoReceipts, f.directory, participants, log)
	f.msgs = services.NewMessageService(
		f.access, f.repoMsgs, f.directory, filter, f.metrics, log)
	f.receipts = services.NewReadReceiptService(
		f.access, f.repoReceipts, f.repoConvs, f.metrics, log)
	return f
}

func (f *svcFixture) addUser(name string) uuid.UUID {
	id := uuid.New()
	f.users[id] = messaging.UserProfile{
		ID:          id,
		DisplayName: name,
		Active:      true,
	}
	return id
}

func (f *svcFixture) addInactiveUser(name string) uuid.UUID {
	id := uuid.New()
	f.users[id] = messaging.UserProfile{ID: id, DisplayName: name, Active: false}
	return id
}

func (f *svcFixture) createGroup(t *testing.T, name string, creator uuid.UUID, members ...uuid.UUID) *messaging.ConversationView {
	t.Helper()
	view, err := f.convs.Create(context.Background(), messaging.CreateConversationCommand{
		CreatorID:      creator,
		ParticipantIDs: members,
		Name:           name,
		IsGroup:        true,
	})
	require.NoError(t, err)
	return view
}

func (f *svcFixture) send(t *testing.T, convID, senderID uuid.UUID, content string) *messaging.MessageView {
	t.Helper()
	view, err := f.msgs.Send(context.Background(), messaging.SendMessageCommand{
		ConversationID: convID,
		SenderID:       senderID,
		Content:        content,
	})
	require.NoError(t, err)
	return view
}
