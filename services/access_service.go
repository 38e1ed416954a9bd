//go:generate go run go.uber.org/mock/mockgen -source=access_service.go -destination=../mocks/mock_access_control.go -package=mocks
package services

import (
	"context"
	"log/slog"

	"community-messaging/cache"
	"community-messaging/domain/messaging"
	"community-messaging/errors"
	"community-messaging/observability"
	"community-messaging/repositories"

	"github.com/google/uuid"
)

// IAccessControl guards every mutating or listing call of the messaging
// core. Participant checks are hot and cache-assisted; admin checks always
// hit storage.
type IAccessControl interface {
	VerifyParticipant(ctx context.Context, conversationID, userID uuid.UUID) error
	VerifyAdmin(ctx context.Context, conversationID, userID uuid.UUID) error
}

type AccessControl struct {
	participants  *cache.ParticipantCache
	conversations repositories.IConversationRepository
	metrics       *observability.MonitoringManager
	log           *slog.Logger
}

func NewAccessControl(
	participants *cache.ParticipantCache,
	conversations repositories.IConversationRepository,
	metrics *observability.MonitoringManager,
	log *slog.Logger,
) IAccessControl {
	return &AccessControl{
		participants:  participants,
		conversations: conversations,
		metrics:       metrics,
		log:           log,
	}
}

// VerifyParticipant checks the cache first and falls back to storage on a
// miss, populating the cache for the next call. The cache is only ever a
// read-through accelerator: a stale entry is repaired by the invalidation
// that every membership mutation performs.
func (a *AccessControl) VerifyParticipant(ctx context.Context, conversationID, userID uuid.UUID) error {
	if set, ok := a.participants.Get(conversationID); ok {
		a.metrics.IncrCacheHit()
		if _, member := set[userID]; member {
			return nil
		}
		a.metrics.IncrAccessDenied()
		return errors.ErrNotParticipant
	}
	a.metrics.IncrCacheMiss()

	ids, err := a.conversations.ActiveParticipantIDs(ctx, conversationID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		// Either the conversation does not exist or everyone has left.
		// Resolve which one so the caller gets the right category.
		if _, err := a.conversations.GetByID(ctx, conversationID); err != nil {
			return err
		}
		a.metrics.IncrAccessDenied()
		return errors.ErrNotParticipant
	}

	a.participants.Put(conversationID, ids)
	for _, id := range ids {
		if id == userID {
			return nil
		}
	}
	a.metrics.IncrAccessDenied()
	return errors.ErrNotParticipant
}

// VerifyAdmin deliberately skips the cache. Admin status is
// security-sensitive and changes rarely, so the staleness risk outweighs
// the read saved.
func (a *AccessControl) VerifyAdmin(ctx context.Context, conversationID, userID uuid.UUID) error {
	if _, err := a.conversations.GetByID(ctx, conversationID); err != nil {
		return err
	}
	participant, err := a.conversations.GetParticipant(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if participant == nil || participant.Status != messaging.ParticipantActive || !participant.IsAdmin {
		a.metrics.IncrAccessDenied()
		a.log.Debug("admin check failed", "conversation", conversationID, "user", userID)
		return errors.ErrAdminRequired
	}
	return nil
}
