package repositories_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"community-messaging/domain/messaging"
	"community-messaging/repositories"
	"community-messaging/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture wires the repositories against a throwaway on-disk database, one
// per test, so tests stay independent and parallelizable.
type fixture struct {
	db       *gorm.DB
	convs    repositories.IConversationRepository
	msgs     repositories.IMessageRepository
	receipts repositories.IReadReceiptRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "messaging.db"), 2*time.Second)
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		db:       db,
		convs:    repositories.NewConversationRepository(db, log),
		msgs:     repositories.NewMessageRepository(db, log),
		receipts: repositories.NewReadReceiptRepository(db, log),
	}
}

func newTextMessage(convID, senderID uuid.UUID, content string, at time.Time) *messaging.Message {
	return &messaging.Message{
		ID:             uuid.New(),
		ConversationID: convID,
		SenderID:       senderID,
		Content:        content,
		Type:           messaging.MessageTypeText,
		CreatedAt:      at,
		UpdatedAt:      at,
	}
}

func newSystemMessage(convID, actorID uuid.UUID, content string, at time.Time) *messaging.Message {
	msg := newTextMessage(convID, actorID, content, at)
	msg.Type = messaging.MessageTypeSystem
	return msg
}

// seedGroup creates a group conversation where the creator is admin and
// every other member is a regular active participant.
func seedGroup(t *testing.T, f *fixture, creator uuid.UUID, others []uuid.UUID, at time.Time) *messaging.Conversation {
	t.Helper()

	conv := &messaging.Conversation{
		ID:        uuid.New(),
		Name:      "general",
		IsGroup:   true,
		CreatedBy: creator,
		CreatedAt: at,
		UpdatedAt: at,
	}
	participants := []messaging.Participant{
		{ConversationID: conv.ID, UserID: creator, IsAdmin: true, Status: messaging.ParticipantActive, JoinedAt: at},
	}
	for _, id := range others {
		participants = append(participants, messaging.Participant{
			ConversationID: conv.ID,
			UserID:         id,
			Status:         messaging.ParticipantActive,
			JoinedAt:       at,
		})
	}
	sysMsg := newSystemMessage(conv.ID, creator, "group created", at)
	require.NoError(t, f.convs.Create(context.Background(), conv, participants, sysMsg))
	return conv
}

func seedDirect(t *testing.T, f *fixture, a, b uuid.UUID, at time.Time) *messaging.Conversation {
	t.Helper()

	key := messaging.DirectKey(a, b)
	conv := &messaging.Conversation{
		ID:        uuid.New(),
		IsGroup:   false,
		DirectKey: &key,
		CreatedBy: a,
		CreatedAt: at,
		UpdatedAt: at,
	}
	participants := []messaging.Participant{
		{ConversationID: conv.ID, UserID: a, Status: messaging.ParticipantActive, JoinedAt: at},
		{ConversationID: conv.ID, UserID: b, Status: messaging.ParticipantActive, JoinedAt: at},
	}
	sysMsg := newSystemMessage(conv.ID, a, "conversation started", at)
	require.NoError(t, f.convs.Create(context.Background(), conv, participants, sysMsg))
	return conv
}
