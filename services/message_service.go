package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"community-messaging/contract"
	"community-messaging/domain/messaging"
	"community-messaging/errors"
	"community-messaging/moderation"
	"community-messaging/observability"
	"community-messaging/repositories"

	"github.com/abadojack/whatlanggo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IMessageService interface {
	Send(ctx context.Context, cmd messaging.SendMessageCommand) (*messaging.MessageView, error)
	Edit(ctx context.Context, cmd messaging.EditMessageCommand) error
	Delete(ctx context.Context, messageID, actorID uuid.UUID) error
	List(ctx context.Context, cmd messaging.ListMessagesCommand) (*messaging.MessagePage, error)
}

type MessageService struct {
	validate  *validator.Validate
	access    IAccessControl
	messages  repositories.IMessageRepository
	directory contract.IUserDirectory
	filter    *moderation.Filter
	metrics   *observability.MonitoringManager
	log       *slog.Logger
}

func NewMessageService(
	access IAccessControl,
	messages repositories.IMessageRepository,
	directory contract.IUserDirectory,
	filter *moderation.Filter,
	metrics *observability.MonitoringManager,
	log *slog.Logger,
) IMessageService {
	return &MessageService{
		validate:  validator.New(),
		access:    access,
		messages:  messages,
		directory: directory,
		filter:    filter,
		metrics:   metrics,
		log:       log,
	}
}

// Send stores the message together with the sender's own read receipt in
// one transaction. Content goes through the moderation filter first and is
// tagged with a best-effort language code.
func (s *MessageService) Send(ctx context.Context, cmd messaging.SendMessageCommand) (*messaging.MessageView, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}
	if err := s.access.VerifyParticipant(ctx, cmd.ConversationID, cmd.SenderID); err != nil {
		return nil, err
	}
	if cmd.ReplyToID != nil {
		// The target must live in the same conversation and not be
		// tombstoned.
		if _, err := s.messages.GetReplyTarget(ctx, cmd.ConversationID, *cmd.ReplyToID); err != nil {
			return nil, err
		}
	}

	content := s.filter.Apply(cmd.Content)
	now := time.Now().UTC()
	msg := messaging.Message{
		ID:             uuid.New(),
		ConversationID: cmd.ConversationID,
		SenderID:       cmd.SenderID,
		Content:        content,
		Lang:           detectLang(content),
		Type:           messaging.MessageTypeText,
		ReplyToID:      cmd.ReplyToID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.messages.Create(ctx, &msg, true); err != nil {
		return nil, err
	}
	s.metrics.IncrMessagesSent()
	s.log.Debug("message sent", "conversation", cmd.ConversationID, "message", msg.ID)

	views, err := buildMessageViews(ctx, s.directory, s.messages, []messaging.Message{msg})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Edit mutates content only. Sender, conversation, type and creation time
// are immutable; the row keeps its place in history.
func (s *MessageService) Edit(ctx context.Context, cmd messaging.EditMessageCommand) error {
	if err := s.validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}
	msg, err := s.messages.GetByID(ctx, cmd.MessageID)
	if err != nil {
		return err
	}
	if msg.Deleted {
		return errors.ErrMessageNotFound
	}
	if msg.SenderID != cmd.ActorID {
		return errors.ErrNotSender
	}

	content := s.filter.Apply(cmd.Content)
	if err := s.messages.UpdateContent(ctx, cmd.MessageID, content, detectLang(content)); err != nil {
		return err
	}
	s.metrics.IncrMessagesEdited()
	return nil
}

// Delete tombstones the row. It disappears from listings but stays behind
// for audit and for replies already pointing at it.
func (s *MessageService) Delete(ctx context.Context, messageID, actorID uuid.UUID) error {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.Deleted {
		return errors.ErrMessageNotFound
	}
	if msg.SenderID != actorID {
		return errors.ErrNotSender
	}
	if err := s.messages.SoftDelete(ctx, messageID); err != nil {
		return err
	}
	s.metrics.IncrMessagesDeleted()
	s.log.Debug("message deleted", "message", messageID)
	return nil
}

// List pages through history anchored on the cursor boundary. Whatever the
// fetch direction, callers always receive ascending chronological order.
func (s *MessageService) List(ctx context.Context, cmd messaging.ListMessagesCommand) (*messaging.MessagePage, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}
	if err := s.access.VerifyParticipant(ctx, cmd.ConversationID, cmd.RequesterID); err != nil {
		return nil, err
	}

	boundary, err := decodeOptionalCursor(cmd.Cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}
	direction := cmd.Direction
	if direction == "" {
		direction = messaging.ListOlder
	}

	rows, err := s.messages.List(ctx, cmd.ConversationID, cmd.Limit+1, boundary, direction)
	if err != nil {
		return nil, err
	}

	page := &messaging.MessagePage{HasMore: len(rows) > cmd.Limit}
	if page.HasMore {
		rows = rows[:cmd.Limit]
	}
	if page.HasMore && len(rows) > 0 {
		// The boundary for the next page is the last row in fetch order.
		cursor := repositories.EncodeCursor(rows[len(rows)-1].CreatedAt)
		page.NextCursor = &cursor
	}

	if direction == messaging.ListOlder {
		rows = lo.Reverse(rows)
	}

	page.Items, err = buildMessageViews(ctx, s.directory, s.messages, rows)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// detectLang is best effort. Short or ambiguous content yields an empty
// code rather than a wrong guess.
func detectLang(content string) string {
	info := whatlanggo.Detect(content)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
