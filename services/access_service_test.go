package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"community-messaging/cache"
	"community-messaging/domain/messaging"
	"community-messaging/errors"
	"community-messaging/mocks"
	"community-messaging/observability"
	"community-messaging/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type accessFixture struct {
	repo   *mocks.MockIConversationRepository
	access services.IAccessControl
}

func newAccessFixture(t *testing.T) *accessFixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	participants, err := cache.NewParticipantCache(16, log)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIConversationRepository(ctrl)
	return &accessFixture{
		repo:   repo,
		access: services.NewAccessControl(participants, repo, observability.NewMonitoringManager(log), log),
	}
}

func Test_AccessControl_VerifyParticipant_CachesLookup(t *testing.T) {
	req := require.New(t)
	f := newAccessFixture(t)
	ctx := context.Background()

	convID := uuid.New()
	alice, bob, outsider := uuid.New(), uuid.New(), uuid.New()

	// Storage is hit exactly once; everything after is served from cache.
	f.repo.EXPECT().
		ActiveParticipantIDs(gomock.Any(), convID).
		Return([]uuid.UUID{alice, bob}, nil).
		Times(1)

	req.NoError(f.access.VerifyParticipant(ctx, convID, alice))
	req.NoError(f.access.VerifyParticipant(ctx, convID, alice))
	req.NoError(f.access.VerifyParticipant(ctx, convID, bob))
	req.ErrorIs(f.access.VerifyParticipant(ctx, convID, outsider), errors.ErrNotParticipant)
}

func Test_AccessControl_VerifyParticipant_EmptySet(t *testing.T) {
	req := require.New(t)
	f := newAccessFixture(t)
	ctx := context.Background()

	existing := uuid.New()
	missing := uuid.New()
	user := uuid.New()

	// Everyone left: the conversation exists, the caller is just not in it.
	f.repo.EXPECT().ActiveParticipantIDs(gomock.Any(), existing).Return(nil, nil)
	f.repo.EXPECT().GetByID(gomock.Any(), existing).Return(&messaging.Conversation{ID: existing}, nil)
	req.ErrorIs(f.access.VerifyParticipant(ctx, existing, user), errors.ErrNotParticipant)

	// Unknown conversation: the caller gets not-found, not forbidden.
	f.repo.EXPECT().ActiveParticipantIDs(gomock.Any(), missing).Return(nil, nil)
	f.repo.EXPECT().GetByID(gomock.Any(), missing).Return(nil, errors.ErrConversationNotFound)
	req.ErrorIs(f.access.VerifyParticipant(ctx, missing, user), errors.ErrConversationNotFound)
}

func Test_AccessControl_VerifyAdmin(t *testing.T) {
	convID := uuid.New()
	user := uuid.New()

	tests := []struct {
		name        string
		participant *messaging.Participant
		expected    error
	}{
		{
			name: "active admin passes",
			participant: &messaging.Participant{
				ConversationID: convID, UserID: user,
				IsAdmin: true, Status: messaging.ParticipantActive,
			},
			expected: nil,
		},
		{
			name: "plain member rejected",
			participant: &messaging.Participant{
				ConversationID: convID, UserID: user,
				Status: messaging.ParticipantActive,
			},
			expected: errors.ErrAdminRequired,
		},
		{
			name: "former admin who left is rejected",
			participant: &messaging.Participant{
				ConversationID: convID, UserID: user,
				IsAdmin: true, Status: messaging.ParticipantLeft,
			},
			expected: errors.ErrAdminRequired,
		},
		{
			name:        "non member rejected",
			participant: nil,
			expected:    errors.ErrAdminRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			f := newAccessFixture(t)

			f.repo.EXPECT().GetByID(gomock.Any(), convID).
				Return(&messaging.Conversation{ID: convID, IsGroup: true}, nil)
			f.repo.EXPECT().GetParticipant(gomock.Any(), convID, user).
				Return(tt.participant, nil)

			err := f.access.VerifyAdmin(context.Background(), convID, user)
			if tt.expected == nil {
				req.NoError(err)
			} else {
				req.ErrorIs(err, tt.expected)
			}
		})
	}
}

func Test_AccessControl_VerifyAdmin_UnknownConversation(t *testing.T) {
	req := require.New(t)
	f := newAccessFixture(t)

	convID := uuid.New()
	f.repo.EXPECT().GetByID(gomock.Any(), convID).Return(nil, errors.ErrConversationNotFound)

	err := f.access.VerifyAdmin(context.Background(), convID, uuid.New())
	req.ErrorIs(err, errors.ErrConversationNotFound)
}
