//go:generate go run go.uber.org/mock/mockgen -source=receipt.go -destination=../mocks/mock_receipt_repository.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"community-messaging/domain/messaging"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// unreadFilter matches messages the given user still has to read: not
// tombstoned, authored by someone else, no receipt row yet.
const unreadFilter = `messages.deleted = ? AND messages.sender_id <> ?
	AND NOT EXISTS (
		SELECT 1 FROM read_receipts
		WHERE read_receipts.message_id = messages.id AND read_receipts.user_id = ?
	)`

type IReadReceiptRepository interface {
	// InsertMany writes receipts idempotently (duplicates are no-ops) and
	// reports how many rows were actually new.
	InsertMany(ctx context.Context, receipts []messaging.ReadReceipt) (int64, error)
	// EligibleMessageIDs narrows candidate IDs to messages that belong to
	// the conversation and were not authored by the reader.
	EligibleMessageIDs(ctx context.Context, conversationID, userID uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error)
	UnreadMessageIDs(ctx context.Context, conversationID, userID uuid.UUID) ([]uuid.UUID, error)
	UnreadCount(ctx context.Context, conversationID, userID uuid.UUID) (int64, error)
	// UnreadByConversation computes the per-conversation breakdown across
	// every conversation where the user is an active participant.
	UnreadByConversation(ctx context.Context, userID uuid.UUID) ([]messaging.UnreadCount, error)
}

type ReadReceiptRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewReadReceiptRepository(db *gorm.DB, log *slog.Logger) IReadReceiptRepository {
	return &ReadReceiptRepository{db: db, log: log}
}

func (r *ReadReceiptRepository) InsertMany(ctx context.Context, receipts []messaging.ReadReceipt) (int64, error) {
	if len(receipts) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&receipts)
	if res.Error != nil {
		return 0, fmt.Errorf("insert receipts: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ReadReceiptRepository) EligibleMessageIDs(ctx context.Context, conversationID, userID uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&messaging.Message{}).
		Where("id IN ? AND conversation_id = ? AND sender_id <> ?", candidates, conversationID, userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("filter receipt candidates: %w", err)
	}
	return ids, nil
}

func (r *ReadReceiptRepository) UnreadMessageIDs(ctx context.Context, conversationID, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&messaging.Message{}).
		Where("messages.conversation_id = ?", conversationID).
		Where(unreadFilter, false, userID, userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list unread messages: %w", err)
	}
	return ids, nil
}

func (r *ReadReceiptRepository) UnreadCount(ctx context.Context, conversationID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&messaging.Message{}).
		Where("messages.conversation_id = ?", conversationID).
		Where(unreadFilter, false, userID, userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return count, nil
}

func (r *ReadReceiptRepository) UnreadByConversation(ctx context.Context, userID uuid.UUID) ([]messaging.UnreadCount, error) {
	rows := []struct {
		ConversationID uuid.UUID
		Count          int64
		UpdatedAt      time.Time
	}{}
	err := r.db.WithContext(ctx).Model(&messaging.Participant{}).
		Select(`participants.conversation_id,
			(SELECT COUNT(1) FROM messages
				WHERE messages.conversation_id = participants.conversation_id
				AND `+unreadFilter+`) AS count,
			conversations.updated_at`,
			false, userID, userID).
		Joins("JOIN conversations ON conversations.id = participants.conversation_id").
		Where("participants.user_id = ? AND participants.status = ?", userID, messaging.ParticipantActive).
		Order("conversations.updated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate unread counts: %w", err)
	}

	counts := make([]messaging.UnreadCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, messaging.UnreadCount{
			ConversationID: row.ConversationID,
			Count:          row.Count,
			LastActivityAt: row.UpdatedAt,
		})
	}
	return counts, nil
}
