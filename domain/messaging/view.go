package messaging

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is what the external user directory knows about a user.
type UserProfile struct {
	ID          uuid.UUID
	DisplayName string
	AvatarURL   string
	Active      bool
}

// ReplyPreview is the truncated echo of the message a reply points at.
type ReplyPreview struct {
	MessageID  uuid.UUID
	SenderName string
	Content    string
}

// MessageView is a message enriched with directory data, ready for the
// boundary layer.
type MessageView struct {
	Message
	SenderName   string
	SenderAvatar string
	ReplyPreview *ReplyPreview
}

// ParticipantView pairs a membership record with directory data.
type ParticipantView struct {
	Participant
	DisplayName string
	AvatarURL   string
}

// ConversationView is the fully assembled conversation as one requester
// sees it.
type ConversationView struct {
	Conversation
	Participants []ParticipantView
	LastMessage  *MessageView
	UnreadCount  int64
}

// ConversationPage is one page of a user's conversation list.
type ConversationPage struct {
	Items      []ConversationView
	NextCursor *string
	HasMore    bool
}

// MessagePage is one page of a conversation's history, always in ascending
// chronological order regardless of the fetch direction.
type MessagePage struct {
	Items      []MessageView
	NextCursor *string
	HasMore    bool
}

// UnreadCount is the per-conversation component of the global badge signal.
type UnreadCount struct {
	ConversationID uuid.UUID
	Count          int64
	LastActivityAt time.Time
}

// UnreadReport aggregates a user's unread state across all conversations.
type UnreadReport struct {
	PerConversation []UnreadCount
	Total           int64
}
