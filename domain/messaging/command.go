package messaging

import "github.com/google/uuid"

// Commands are the validated input shapes of the service layer. Struct tags
// are checked by the services before any storage work happens, so malformed
// input surfaces as structured field errors instead of ad hoc failures deep
// in business logic.

type CreateConversationCommand struct {
	CreatorID      uuid.UUID   `validate:"required"`
	ParticipantIDs []uuid.UUID `validate:"required,min=1"`
	Name           string      `validate:"max=100"`
	IsGroup        bool
}

type RenameConversationCommand struct {
	ConversationID uuid.UUID `validate:"required"`
	ActorID        uuid.UUID `validate:"required"`
	Name           string    `validate:"required,max=100"`
}

type AddMembersCommand struct {
	ConversationID uuid.UUID   `validate:"required"`
	ActorID        uuid.UUID   `validate:"required"`
	MemberIDs      []uuid.UUID `validate:"required,min=1"`
}

type RemoveMemberCommand struct {
	ConversationID uuid.UUID `validate:"required"`
	ActorID        uuid.UUID `validate:"required"`
	TargetID       uuid.UUID `validate:"required"`
}

type MakeAdminCommand struct {
	ConversationID uuid.UUID `validate:"required"`
	ActorID        uuid.UUID `validate:"required"`
	TargetID       uuid.UUID `validate:"required"`
}

type SendMessageCommand struct {
	ConversationID uuid.UUID `validate:"required"`
	SenderID       uuid.UUID `validate:"required"`
	Content        string    `validate:"required,max=4000"`
	ReplyToID      *uuid.UUID
}

type EditMessageCommand struct {
	MessageID uuid.UUID `validate:"required"`
	ActorID   uuid.UUID `validate:"required"`
	Content   string    `validate:"required,max=4000"`
}

// ListDirection anchors message pagination relative to the cursor boundary.
type ListDirection string

const (
	ListOlder ListDirection = "older"
	ListNewer ListDirection = "newer"
)

type ListMessagesCommand struct {
	ConversationID uuid.UUID `validate:"required"`
	RequesterID    uuid.UUID `validate:"required"`
	Limit          int       `validate:"min=1,max=100"`
	Cursor         *string
	Direction      ListDirection `validate:"omitempty,oneof=older newer"`
}

type ListConversationsCommand struct {
	UserID uuid.UUID `validate:"required"`
	Limit  int       `validate:"min=1,max=100"`
	Cursor *string
}

type MarkReadCommand struct {
	ConversationID uuid.UUID `validate:"required"`
	UserID         uuid.UUID `validate:"required"`
	// MessageIDs restricts the receipts to specific messages. Empty means
	// "everything currently unread in the conversation".
	MessageIDs []uuid.UUID
}
