package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"community-messaging/domain/messaging"
	"community-messaging/errors"
	"community-messaging/observability"
	"community-messaging/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IReadReceiptService interface {
	// MarkRead inserts receipts for the given messages, or for everything
	// currently unread when no IDs are passed, and returns how many
	// receipts were actually new.
	MarkRead(ctx context.Context, cmd messaging.MarkReadCommand) (int64, error)
	UnreadCounts(ctx context.Context, userID uuid.UUID) (*messaging.UnreadReport, error)
}

type ReadReceiptService struct {
	validate      *validator.Validate
	access        IAccessControl
	receipts      repositories.IReadReceiptRepository
	conversations repositories.IConversationRepository
	metrics       *observability.MonitoringManager
	log           *slog.Logger
}

func NewReadReceiptService(
	access IAccessControl,
	receipts repositories.IReadReceiptRepository,
	conversations repositories.IConversationRepository,
	metrics *observability.MonitoringManager,
	log *slog.Logger,
) IReadReceiptService {
	return &ReadReceiptService{
		validate:      validator.New(),
		access:        access,
		receipts:      receipts,
		conversations: conversations,
		metrics:       metrics,
		log:           log,
	}
}

func (s *ReadReceiptService) MarkRead(ctx context.Context, cmd messaging.MarkReadCommand) (int64, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}
	if err := s.access.VerifyParticipant(ctx, cmd.ConversationID, cmd.UserID); err != nil {
		return 0, err
	}

	var (
		targets []uuid.UUID
		err     error
	)
	if len(cmd.MessageIDs) > 0 {
		// Only messages of this conversation that the reader did not
		// author are eligible; everything else is dropped silently so the
		// call stays idempotent.
		targets, err = s.receipts.EligibleMessageIDs(ctx, cmd.ConversationID, cmd.UserID, lo.Uniq(cmd.MessageIDs))
	} else {
		targets, err = s.receipts.UnreadMessageIDs(ctx, cmd.ConversationID, cmd.UserID)
	}
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	rows := lo.Map(targets, func(id uuid.UUID, _ int) messaging.ReadReceipt {
		return messaging.ReadReceipt{MessageID: id, UserID: cmd.UserID, CreatedAt: now}
	})
	inserted, err := s.receipts.InsertMany(ctx, rows)
	if err != nil {
		return 0, err
	}

	// The bookmark moves even when nothing was inserted: the user has
	// caught up either way.
	if err := s.conversations.UpdateLastRead(ctx, cmd.ConversationID, cmd.UserID, now); err != nil {
		return 0, err
	}

	if inserted > 0 {
		s.metrics.AddReceiptsInserted(uint64(inserted))
	}
	s.log.Debug("marked read",
		"conversation", cmd.ConversationID, "user", cmd.UserID, "inserted", inserted)
	return inserted, nil
}

// UnreadCounts is the polling signal behind the global unread badge.
func (s *ReadReceiptService) UnreadCounts(ctx context.Context, userID uuid.UUID) (*messaging.UnreadReport, error) {
	perConversation, err := s.receipts.UnreadByConversation(ctx, userID)
	if err != nil {
		return nil, err
	}
	report := &messaging.UnreadReport{PerConversation: perConversation}
	for _, c := range perConversation {
		report.Total += c.Count
	}
	return report, nil
}
