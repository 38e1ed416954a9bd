package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"community-messaging/domain/messaging"
	"community-messaging/errors"
	"community-messaging/mocks"
	"community-messaging/observability"
	"community-messaging/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_ReadReceiptService_MarkRead_All(t *testing.T) {
	req := require.New(t)
	f := newSvcFixture(t)
	ctx := context.Background()

	alice := f.addUser("Alice")
	bob := f.addUser("Bob")
	conv := f.createGroup(t, "team", alice, bob)

	for i := 0; i < 3; i++ {
		f.send(t, conv.ID, alice, "ping")
	}

	// 3 messages plus the creation notice are unread for Bob.
	report, err := f.receipts.UnreadCounts(ctx, bob)
	req.NoError(err)
	req.Equal(int64(4), report.Total)

	inserted, err := f.receipts.MarkRead(ctx, messaging.MarkReadCommand{
		ConversationID: conv.ID,
		UserID:         bob,
	})
	req.NoError(err)
	req.Equal(int64(4), inserted)

	report, err = f.receipts.UnreadCounts(ctx, bob)
	req.NoError(err)
	req.Zero(report.Total)

	// Catching up again inserts nothing but still succeeds.
	inserted, err = f.receipts.MarkRead(ctx, messaging.MarkReadCommand{
		ConversationID: conv.ID,
		UserID:         bob,
	})
	req.NoError(err)
	req.Zero(inserted)
}

func Test_ReadReceiptService_MarkRead_Specific(t *testing.T) {
	req := require.New(t)
	f := newSvcFixture(t)
	ctx := context.Background()

	alice := f.addUser("Alice")
	bob := f.addUser("Bob")
	conv := f.createGroup(t, "team", alice, bob)
	other := f.createGroup(t, "elsewhere", alice, bob)

	first := f.send(t, conv.ID, alice, "one")
	second := f.send(t, conv.ID, alice, "two")
	own := f.send(t, conv.ID, bob, "mine")
	foreign := f.send(t, other.ID, alice, "other room")

	// Own messages, other-conversation messages and unknown IDs are
	// dropped silently; duplicates in the input collapse.
	inserted, err := f.receipts.MarkRead(ctx, messaging.MarkReadCommand{
		ConversationID: conv.ID,
		UserID:         bob,
		MessageIDs: []uuid.UUID{
			first.ID, first.ID, own.ID, foreign.ID, uuid.New(),
		},
	})
	req.NoError(err)
	req.Equal(int64(1), inserted)

	// Replaying is a no-op.
	inserted, err = f.receipts.MarkRead(ctx, messaging.MarkReadCommand{
		ConversationID: conv.ID,
		UserID:         bob,
		MessageIDs:     []uuid.UUID{first.ID},
	})
	req.NoError(err)
	req.Zero(inserted)

	// The second message stays unread until read explicitly.
	inserted, err = f.receipts.MarkRead(ctx, messaging.MarkReadCommand{
		ConversationID: conv.ID,
		UserID:         bob,
		MessageIDs:     []uuid.UUID{second.ID},
	})
	req.NoError(err)
	req.Equal(int64(1), inserted)
}

func Test_ReadReceiptService_MarkRead_NonParticipant(t *testing.T) {
	req := require.New(t)
	f := newSvcFixture(t)

	alice := f.addUser("Alice")
	bob := f.addUser("Bob")
	outsider := f.addUser("Mallory")
	conv := f.createGroup(t, "team", alice, bob)

	_, err := f.receipts.MarkRead(context.Background(), messaging.MarkReadCommand{
		ConversationID: conv.ID,
		UserID:         outsider,
	})
	req.ErrorIs(err, errors.ErrNotParticipant)
}

func Test_ReadReceiptService_MarkRead_MovesBookmark(t *testing.T) {
	req := require.New(t)
	f := newSvcFixture(t)
	ctx := context.Background()

	alice := f.addUser("Alice")
	bob := f.addUser("Bob")
	conv := f.createGroup(t, "team", alice, bob)

	view, err := f.convs.Get(ctx, conv.ID, bob)
	req.NoError(err)
	for _, p := range view.Participants {
		if p.UserID == bob {
			req.Nil(p.LastReadAt)
		}
	}

	_, err = f.receipts.MarkRead(ctx, messaging.MarkReadCommand{
		ConversationID: conv.ID,
		UserID:         bob,
	})
	req.NoError(err)

	view, err = f.convs.Get(ctx, conv.ID, bob)
	req.NoError(err)
	for _, p := range view.Participants {
		if p.UserID == bob {
			req.NotNil(p.LastReadAt)
		}
	}
}

// Explicit IDs go through the eligibility filter; an empty command reads
// everything unread. Mocked out to pin the routing rather than the SQL.
func Test_ReadReceiptService_MarkRead_Routing(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	access := mocks.NewMockIAccessControl(ctrl)
	receiptRepo := mocks.NewMockIReadReceiptRepository(ctrl)
	convRepo := mocks.NewMockIConversationRepository(ctrl)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewReadReceiptService(access, receiptRepo, convRepo, observability.NewMonitoringManager(log), log)

	convID, user := uuid.New(), uuid.New()
	msgID := uuid.New()

	access.EXPECT().VerifyParticipant(gomock.Any(), convID, user).Return(nil).Times(2)
	convRepo.EXPECT().UpdateLastRead(gomock.Any(), convID, user, gomock.Any()).Return(nil).Times(2)

	receiptRepo.EXPECT().
		EligibleMessageIDs(gomock.Any(), convID, user, []uuid.UUID{msgID}).
		Return([]uuid.UUID{msgID}, nil)
	receiptRepo.EXPECT().InsertMany(gomock.Any(), gomock.Len(1)).Return(int64(1), nil)

	inserted, err := svc.MarkRead(ctx, messaging.MarkReadCommand{
		ConversationID: convID,
		UserID:         user,
		MessageIDs:     []uuid.UUID{msgID},
	})
	req.NoError(err)
	req.Equal(int64(1), inserted)

	receiptRepo.EXPECT().UnreadMessageIDs(gomock.Any(), convID, user).Return(nil, nil)
	receiptRepo.EXPECT().InsertMany(gomock.Any(), gomock.Len(0)).Return(int64(0), nil)

	inserted, err = svc.MarkRead(ctx, messaging.MarkReadCommand{
		ConversationID: convID,
		UserID:         user,
	})
	req.NoError(err)
	req.Zero(inserted)
}

func Test_ReadReceiptService_UnreadCounts_AcrossConversations(t *testing.T) {
	req := require.New(t)
	f := newSvcFixture(t)
	ctx := context.Background()

	alice := f.addUser("Alice")
	bob := f.addUser("Bob")

	quiet := f.createGroup(t, "quiet", alice, bob)
	busy := f.createGroup(t, "busy", alice, bob)
	for i := 0; i < 3; i++ {
		f.send(t, busy.ID, alice, "ping")
	}

	report, err := f.receipts.UnreadCounts(ctx, bob)
	req.NoError(err)
	req.Len(report.PerConversation, 2)
	// 3 pings + creation notice, then the quiet room's creation notice.
	req.Equal(int64(5), report.Total)
	req.Equal(busy.ID, report.PerConversation[0].ConversationID)
	req.Equal(int64(4), report.PerConversation[0].Count)
	req.Equal(quiet.ID, report.PerConversation[1].ConversationID)
	req.Equal(int64(1), report.PerConversation[1].Count)

	// Catching up in one conversation leaves the other untouched.
	_, err = f.receipts.MarkRead(ctx, messaging.MarkReadCommand{
		ConversationID: busy.ID,
		UserID:         bob,
	})
	req.NoError(err)

	report, err = f.receipts.UnreadCounts(ctx, bob)
	req.NoError(err)
	req.Equal(int64(1), report.Total)

	// Deleting an unread message removes it from the count.
	late := f.send(t, busy.ID, alice, "never mind")
	report, err = f.receipts.UnreadCounts(ctx, bob)
	req.NoError(err)
	req.Equal(int64(2), report.Total)

	req.NoError(f.msgs.Delete(ctx, late.ID, alice))
	report, err = f.receipts.UnreadCounts(ctx, bob)
	req.NoError(err)
	req.Equal(int64(1), report.Total)
}
