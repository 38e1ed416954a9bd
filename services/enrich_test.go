package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"community-messaging/domain/messaging"
	"community-messaging/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_BuildMessageViews(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockIUserDirectory(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	ctx := context.Background()

	alice, bob := uuid.New(), uuid.New()
	convID := uuid.New()
	now := time.Now().UTC()

	target := messaging.Message{
		ID:             uuid.New(),
		ConversationID: convID,
		SenderID:       alice,
		Content:        strings.Repeat("x", 150),
		Deleted:        true,
		CreatedAt:      now,
	}
	reply := messaging.Message{
		ID:             uuid.New(),
		ConversationID: convID,
		SenderID:       bob,
		Content:        "still relevant",
		ReplyToID:      &target.ID,
		CreatedAt:      now.Add(time.Second),
	}

	// The tombstoned target is still loaded for the preview.
	messages.EXPECT().GetByID(gomock.Any(), target.ID).Return(&target, nil)
	directory.EXPECT().Profiles(gomock.Any(), gomock.Any()).Return(map[uuid.UUID]messaging.UserProfile{
		alice: {ID: alice, DisplayName: "Alice", Active: true},
		bob:   {ID: bob, DisplayName: "Bob", Active: true},
	}, nil)

	views, err := buildMessageViews(ctx, directory, messages, []messaging.Message{reply})
	req.NoError(err)
	req.Len(views, 1)
	req.Equal("Bob", views[0].SenderName)
	req.NotNil(views[0].ReplyPreview)
	req.Equal("Alice", views[0].ReplyPreview.SenderName)
	req.Len(views[0].ReplyPreview.Content, replyPreviewLimit)
}

func Test_BuildMessageViews_Empty(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockIUserDirectory(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)

	views, err := buildMessageViews(context.Background(), directory, messages, nil)
	req.NoError(err)
	req.Nil(views)
}

func Test_TruncateRunes(t *testing.T) {
	req := require.New(t)

	req.Equal("short", truncateRunes("short", 10))
	req.Equal("exact", truncateRunes("exact", 5))
	req.Equal("abc", truncateRunes("abcdef", 3))
	// Multibyte content is cut on rune boundaries.
	req.Equal("héllo", truncateRunes("héllo wörld", 5))
}
