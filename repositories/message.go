//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"time"

	"community-messaging/domain/messaging"
	"community-messaging/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IMessageRepository interface {
	// Create inserts the message and, when the sender is a real user, the
	// sender's own read receipt, then bumps the conversation's activity
	// timestamp. One transaction.
	Create(ctx context.Context, msg *messaging.Message, withSenderReceipt bool) error
	GetByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error)
	// GetReplyTarget resolves a reply reference: same conversation, not
	// tombstoned.
	GetReplyTarget(ctx context.Context, conversationID, messageID uuid.UUID) (*messaging.Message, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content, lang string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// List fetches up to limit non-deleted messages anchored strictly
	// before (older) or after (newer) the boundary on CreatedAt. Rows come
	// back in fetch order; the service restores chronological order.
	List(ctx context.Context, conversationID uuid.UUID, limit int, boundary *time.Time, direction messaging.ListDirection) ([]messaging.Message, error)
	LastMessage(ctx context.Context, conversationID uuid.UUID) (*messaging.Message, error)
}

type MessageRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewMessageRepository(db *gorm.DB, log *slog.Logger) IMessageRepository {
	return &MessageRepository{db: db, log: log}
}

func (r *MessageRepository) Create(ctx context.Context, msg *messaging.Message, withSenderReceipt bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
		if withSenderReceipt {
			// The sender has read their own message by definition.
			receipt := messaging.ReadReceipt{
				MessageID: msg.ID,
				UserID:    msg.SenderID,
				CreatedAt: msg.CreatedAt,
			}
			if err := tx.Create(&receipt).Error; err != nil {
				return fmt.Errorf("insert sender receipt: %w", err)
			}
		}
		return bumpConversation(tx, msg.ConversationID, msg.CreatedAt)
	})
}

func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	var msg messaging.Message
	err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load message: %w", err)
	}
	return &msg, nil
}

func (r *MessageRepository) GetReplyTarget(ctx context.Context, conversationID, messageID uuid.UUID) (*messaging.Message, error) {
	var msg messaging.Message
	err := r.db.WithContext(ctx).
		Where("id = ? AND conversation_id = ? AND deleted = ?", messageID, conversationID, false).
		First(&msg).Error
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrInvalidReply
	}
	if err != nil {
		return nil, fmt.Errorf("resolve reply target: %w", err)
	}
	return &msg, nil
}

func (r *MessageRepository) UpdateContent(ctx context.Context, id uuid.UUID, content, lang string) error {
	res := r.db.WithContext(ctx).Model(&messaging.Message{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(map[string]any{
			"content":    content,
			"lang":       lang,
			"is_edited":  true,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("edit message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&messaging.Message{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(map[string]any{"deleted": true, "deleted_at": now, "updated_at": now})
	if res.Error != nil {
		return fmt.Errorf("delete message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepository) List(ctx context.Context, conversationID uuid.UUID, limit int, boundary *time.Time, direction messaging.ListDirection) ([]messaging.Message, error) {
	query := r.db.WithContext(ctx).
		Where("conversation_id = ? AND deleted = ?", conversationID, false).
		Limit(limit)

	if direction == messaging.ListNewer {
		query = query.Order("created_at ASC")
		if boundary != nil {
			query = query.Where("created_at > ?", *boundary)
		}
	} else {
		query = query.Order("created_at DESC")
		if boundary != nil {
			query = query.Where("created_at < ?", *boundary)
		}
	}

	var msgs []messaging.Message
	if err := query.Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

func (r *MessageRepository) LastMessage(ctx context.Context, conversationID uuid.UUID) (*messaging.Message, error) {
	var msg messaging.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND deleted = ?", conversationID, false).
		Order("created_at DESC").
		First(&msg).Error
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load last message: %w", err)
	}
	return &msg, nil
}
