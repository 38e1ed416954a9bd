//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
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
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type IConversationRepository interface {
	// Create inserts the conversation, its initial participant rows and the
	// creation system message in one transaction.
	Create(ctx context.Context, conv *messaging.Conversation, participants []messaging.Participant, sysMsg *messaging.Message) error
	FindDirectByKey(ctx context.Context, directKey string) (*messaging.Conversation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*messaging.Conversation, error)

	ActiveParticipants(ctx context.Context, conversationID uuid.UUID) ([]messaging.Participant, error)
	ActiveParticipantIDs(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error)
	GetParticipant(ctx context.Context, conversationID, userID uuid.UUID) (*messaging.Participant, error)

	Rename(ctx context.Context, conversationID uuid.UUID, name string, sysMsg *messaging.Message) error
	AddMembers(ctx context.Context, conversationID uuid.UUID, userIDs []uuid.UUID, sysMsg *messaging.Message) error
	SetLeft(ctx context.Context, conversationID, userID uuid.UUID, sysMsg *messaging.Message) error
	SetAdmin(ctx context.Context, conversationID, userID uuid.UUID, sysMsg *messaging.Message) error
	UpdateLastRead(ctx context.Context, conversationID, userID uuid.UUID, readAt time.Time) error

	// ListForUser returns conversations where the user is an active
	// participant, newest activity first, strictly older than the boundary
	// when one is given. Callers over-fetch to detect more pages.
	ListForUser(ctx context.Context, userID uuid.UUID, limit int, before *time.Time) ([]messaging.Conversation, error)
}

type ConversationRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewConversationRepository(db *gorm.DB, log *slog.Logger) IConversationRepository {
	return &ConversationRepository{db: db, log: log}
}

func (r *ConversationRepository) Create(ctx context.Context, conv *messaging.Conversation, participants []messaging.Participant, sysMsg *messaging.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return fmt.Errorf("insert conversation: %w", err)
		}
		if err := tx.Create(&participants).Error; err != nil {
			return fmt.Errorf("insert participants: %w", err)
		}
		if err := tx.Create(sysMsg).Error; err != nil {
			return fmt.Errorf("insert creation message: %w", err)
		}
		return nil
	})
}

func (r *ConversationRepository) FindDirectByKey(ctx context.Context, directKey string) (*messaging.Conversation, error) {
	var conv messaging.Conversation
	err := r.db.WithContext(ctx).
		Where("direct_key = ?", directKey).
		First(&conv).Error
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup direct conversation: %w", err)
	}
	return &conv, nil
}

func (r *ConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*messaging.Conversation, error) {
	var conv messaging.Conversation
	err := r.db.WithContext(ctx).First(&conv, "id = ?", id).Error
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	return &conv, nil
}

func (r *ConversationRepository) ActiveParticipants(ctx context.Context, conversationID uuid.UUID) ([]messaging.Participant, error) {
	var participants []messaging.Participant
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND status = ?", conversationID, messaging.ParticipantActive).
		Order("joined_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}
	return participants, nil
}

func (r *ConversationRepository) ActiveParticipantIDs(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error) {
	participants, err := r.ActiveParticipants(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return lo.Map(participants, func(p messaging.Participant, _ int) uuid.UUID {
		return p.UserID
	}), nil
}

func (r *ConversationRepository) GetParticipant(ctx context.Context, conversationID, userID uuid.UUID) (*messaging.Participant, error) {
	var participant messaging.Participant
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&participant).Error
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load participant: %w", err)
	}
	return &participant, nil
}

func (r *ConversationRepository) Rename(ctx context.Context, conversationID uuid.UUID, name string, sysMsg *messaging.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&messaging.Conversation{}).
			Where("id = ?", conversationID).
			Updates(map[string]any{"name": name, "updated_at": time.Now().UTC()})
		if res.Error != nil {
			return fmt.Errorf("rename conversation: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.ErrConversationNotFound
		}
		return tx.Create(sysMsg).Error
	})
}

// AddMembers upserts one membership row per user. A previously-left member
// is reactivated with the admin flag cleared; a brand new member gets a
// fresh row. Runs with the system message in one transaction so the group
// is never observable with a partial membership change.
func (r *ConversationRepository) AddMembers(ctx context.Context, conversationID uuid.UUID, userIDs []uuid.UUID, sysMsg *messaging.Message) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, userID := range userIDs {
			var existing messaging.Participant
			err := tx.Where("conversation_id = ? AND user_id = ?", conversationID, userID).
				First(&existing).Error
			switch {
			case goerrors.Is(err, gorm.ErrRecordNotFound):
				participant := messaging.Participant{
					ConversationID: conversationID,
					UserID:         userID,
					Status:         messaging.ParticipantActive,
					JoinedAt:       now,
				}
				if err := tx.Create(&participant).Error; err != nil {
					return fmt.Errorf("insert participant %s: %w", userID, err)
				}
			case err != nil:
				return fmt.Errorf("load participant %s: %w", userID, err)
			default:
				err := tx.Model(&existing).Updates(map[string]any{
					"status":    messaging.ParticipantActive,
					"is_admin":  false,
					"left_at":   nil,
					"joined_at": now,
				}).Error
				if err != nil {
					return fmt.Errorf("reactivate participant %s: %w", userID, err)
				}
			}
		}
		if err := tx.Create(sysMsg).Error; err != nil {
			return err
		}
		return bumpConversation(tx, conversationID, now)
	})
}

func (r *ConversationRepository) SetLeft(ctx context.Context, conversationID, userID uuid.UUID, sysMsg *messaging.Message) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&messaging.Participant{}).
			Where("conversation_id = ? AND user_id = ? AND status = ?",
				conversationID, userID, messaging.ParticipantActive).
			Updates(map[string]any{"status": messaging.ParticipantLeft, "left_at": now})
		if res.Error != nil {
			return fmt.Errorf("mark participant left: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.ErrNotParticipant
		}
		if err := tx.Create(sysMsg).Error; err != nil {
			return err
		}
		return bumpConversation(tx, conversationID, now)
	})
}

func (r *ConversationRepository) SetAdmin(ctx context.Context, conversationID, userID uuid.UUID, sysMsg *messaging.Message) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&messaging.Participant{}).
			Where("conversation_id = ? AND user_id = ? AND status = ?",
				conversationID, userID, messaging.ParticipantActive).
			Update("is_admin", true)
		if res.Error != nil {
			return fmt.Errorf("grant admin: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.ErrNotParticipant
		}
		if err := tx.Create(sysMsg).Error; err != nil {
			return err
		}
		return bumpConversation(tx, conversationID, now)
	})
}

func (r *ConversationRepository) UpdateLastRead(ctx context.Context, conversationID, userID uuid.UUID, readAt time.Time) error {
	err := r.db.WithContext(ctx).Model(&messaging.Participant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("last_read_at", readAt).Error
	if err != nil {
		return fmt.Errorf("update read bookmark: %w", err)
	}
	return nil
}

func (r *ConversationRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit int, before *time.Time) ([]messaging.Conversation, error) {
	query := r.db.WithContext(ctx).
		Joins("JOIN participants ON participants.conversation_id = conversations.id").
		Where("participants.user_id = ? AND participants.status = ?", userID, messaging.ParticipantActive).
		Order("conversations.updated_at DESC").
		Limit(limit)
	if before != nil {
		query = query.Where("conversations.updated_at < ?", *before)
	}

	var conversations []messaging.Conversation
	if err := query.Find(&conversations).Error; err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return conversations, nil
}

// bumpConversation moves a conversation to the top of everyone's list.
func bumpConversation(tx *gorm.DB, conversationID uuid.UUID, at time.Time) error {
	return tx.Model(&messaging.Conversation{}).
		Where("id = ?", conversationID).
		Update("updated_at", at).Error
}
