package test

import (
	"context"
	"fmt"
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
	"community-messaging/services"
	"community-messaging/storage"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// config lets CI tune the scenario without touching code.
type config struct {
	DatabaseDir   string `envconfig:"TEST_DATABASE_DIR"`
	PageSize      int    `envconfig:"TEST_PAGE_SIZE" default:"20"`
	MessageCount  int    `envconfig:"TEST_MESSAGE_COUNT" default:"60"`
	CacheCapacity int    `envconfig:"TEST_CACHE_CAPACITY" default:"32"`
}

type stack struct {
	cfg      config
	users    map[uuid.UUID]messaging.UserProfile
	registry services.Registry
}

func newStack(t *testing.T) *stack {
	t.Helper()

	var cfg config
	require.NoError(t, envconfig.Process("", &cfg))
	if cfg.DatabaseDir == "" {
		cfg.DatabaseDir = t.TempDir()
	}

	db, err := storage.Open(filepath.Join(cfg.DatabaseDir, "messaging.db"), 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewManager(db, log)

	participants, err := cache.NewParticipantCache(cfg.CacheCapacity, log)
	require.NoError(t, err)
	filter, err := moderation.NewFilter(nil, '*')
	require.NoError(t, err)
	metrics := observability.NewMonitoringManager(log)

	s := &stack{cfg: cfg, users: map[uuid.UUID]messaging.UserProfile{}}

	ctrl := gomock.NewController(t)
	directory := mocks.NewMockIUserDirectory(ctrl)
	directory.EXPECT().Profiles(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]messaging.UserProfile, error) {
			out := map[uuid.UUID]messaging.UserProfile{}
			for _, id := range ids {
				if profile, ok := s.users[id]; ok {
					out[id] = profile
				}
			}
			return out, nil
		}).AnyTimes()
	directory.EXPECT().Profile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id uuid.UUID) (messaging.UserProfile, error) {
			return s.users[id], nil
		}).AnyTimes()

	access := services.NewAccessControl(participants, store.Conversations(), metrics, log)
	s.registry = services.Registry{
		Access: access,
		Conversations: services.NewConversationService(
			access, store.Conversations(), store.Messages(), store.Receipts(), directory, participants, log),
		Messages: services.NewMessageService(
			access, store.Messages(), directory, filter, metrics, log),
		Receipts: services.NewReadReceiptService(
			access, store.Receipts(), store.Conversations(), metrics, log),
	}
	return s
}

func (s *stack) addUser(name string) uuid.UUID {
	id := uuid.New()
	s.users[id] = messaging.UserProfile{ID: id, DisplayName: name, Active: true}
	return id
}

// Test_Scenario_GroupLifecycle walks the full lifecycle: create a group,
// flood it with messages, page backwards through history, catch up on
// receipts and check the unread badge converges to zero.
func Test_Scenario_GroupLifecycle(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	ctx := context.Background()

	alice := s.addUser("Alice")
	bob := s.addUser("Bob")
	carol := s.addUser("Carol")

	conv, err := s.registry.Conversations.Create(ctx, messaging.CreateConversationCommand{
		CreatorID:      alice,
		ParticipantIDs: []uuid.UUID{bob, carol},
		Name:           "launch week",
		IsGroup:        true,
	})
	req.NoError(err)
	req.Len(conv.Participants, 3)

	for i := 0; i < s.cfg.MessageCount; i++ {
		_, err := s.registry.Messages.Send(ctx, messaging.SendMessageCommand{
			ConversationID: conv.ID,
			SenderID:       alice,
			Content:        fmt.Sprintf("update %d", i),
		})
		req.NoError(err)
	}

	// Page backwards through the whole history. Every page except the
	// last is full, no message is skipped or duplicated.
	seen := map[uuid.UUID]struct{}{}
	var cursor *string
	pages := 0
	for {
		page, err := s.registry.Messages.List(ctx, messaging.ListMessagesCommand{
			ConversationID: conv.ID,
			RequesterID:    bob,
			Limit:          s.cfg.PageSize,
			Cursor:         cursor,
		})
		req.NoError(err)
		pages++
		for _, item := range page.Items {
			_, dup := seen[item.ID]
			req.False(dup, "message listed twice")
			seen[item.ID] = struct{}{}
		}
		if !page.HasMore {
			break
		}
		req.Len(page.Items, s.cfg.PageSize)
		cursor = page.NextCursor
	}
	// All sent messages plus the creation notice.
	req.Len(seen, s.cfg.MessageCount+1)
	req.Equal((s.cfg.MessageCount+1)/s.cfg.PageSize+1, pages)

	// Bob is behind by everything, Alice by nothing.
	report, err := s.registry.Receipts.UnreadCounts(ctx, bob)
	req.NoError(err)
	req.Equal(int64(s.cfg.MessageCount+1), report.Total)

	report, err = s.registry.Receipts.UnreadCounts(ctx, alice)
	req.NoError(err)
	req.Zero(report.Total)

	inserted, err := s.registry.Receipts.MarkRead(ctx, messaging.MarkReadCommand{
		ConversationID: conv.ID,
		UserID:         bob,
	})
	req.NoError(err)
	req.Equal(int64(s.cfg.MessageCount+1), inserted)

	report, err = s.registry.Receipts.UnreadCounts(ctx, bob)
	req.NoError(err)
	req.Zero(report.Total)

	// Carol is still behind; receipts are per user.
	report, err = s.registry.Receipts.UnreadCounts(ctx, carol)
	req.NoError(err)
	req.Equal(int64(s.cfg.MessageCount+1), report.Total)
}

// Test_Scenario_DirectAndMembership covers the 1:1 dedup guarantee and the
// admin handover flow across service boundaries.
func Test_Scenario_DirectAndMembership(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	ctx := context.Background()

	alice := s.addUser("Alice")
	bob := s.addUser("Bob")
	carol := s.addUser("Carol")

	direct, err := s.registry.Conversations.Create(ctx, messaging.CreateConversationCommand{
		CreatorID:      alice,
		ParticipantIDs: []uuid.UUID{bob},
	})
	req.NoError(err)

	again, err := s.registry.Conversations.Create(ctx, messaging.CreateConversationCommand{
		CreatorID:      bob,
		ParticipantIDs: []uuid.UUID{alice},
	})
	req.NoError(err)
	req.Equal(direct.ID, again.ID)

	group, err := s.registry.Conversations.Create(ctx, messaging.CreateConversationCommand{
		CreatorID:      alice,
		ParticipantIDs: []uuid.UUID{bob},
		Name:           "ops",
		IsGroup:        true,
	})
	req.NoError(err)

	// Promote Bob, let Alice leave, Bob runs the group from then on.
	req.NoError(s.registry.Conversations.MakeAdmin(ctx, messaging.MakeAdminCommand{
		ConversationID: group.ID, ActorID: alice, TargetID: bob,
	}))
	req.NoError(s.registry.Conversations.RemoveMember(ctx, messaging.RemoveMemberCommand{
		ConversationID: group.ID, ActorID: alice, TargetID: alice,
	}))
	req.NoError(s.registry.Conversations.AddMembers(ctx, messaging.AddMembersCommand{
		ConversationID: group.ID, ActorID: bob, MemberIDs: []uuid.UUID{carol},
	}))

	view, err := s.registry.Conversations.Get(ctx, group.ID, carol)
	req.NoError(err)
	req.Len(view.Participants, 2)

	// Alice is out and stays out.
	_, err = s.registry.Conversations.Get(ctx, group.ID, alice)
	req.Error(err)
}
