// Package messaging contains the core concepts of the conversation system.
// Entities here map 1:1 onto the relational store and carry no runtime,
// network, or UI logic.
package messaging

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MessageType distinguishes user text from automatically generated entries.
type MessageType string

const (
	MessageTypeText         MessageType = "text"
	MessageTypeSystem       MessageType = "system"
	MessageTypeNotification MessageType = "notification"
)

// ParticipantStatus is an explicit membership state, not just a nullable
// timestamp, so "can return later" relationships stay queryable.
type ParticipantStatus string

const (
	ParticipantActive ParticipantStatus = "active"
	ParticipantLeft   ParticipantStatus = "left"
)

// Conversation is a thread of messages among a participant set, either a
// private 1:1 or a named group. UpdatedAt is bumped on every content or
// settings change and drives list ordering.
type Conversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100"`
	IsGroup   bool      `gorm:"not null"`
	DirectKey *string   `gorm:"uniqueIndex"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;index"`
}

// DirectKey canonicalizes an unordered user pair so the store can enforce
// at most one active direct conversation per pair.
func DirectKey(a, b uuid.UUID) string {
	if a.String() > b.String() {
		a, b = b, a
	}
	return fmt.Sprintf("%s:%s", a, b)
}

// Participant is a user's membership record in a conversation. The admin
// attribute only has meaning while Status is active and is reset on re-add.
type Participant struct {
	ConversationID uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	IsAdmin        bool              `gorm:"not null;default:false"`
	Status         ParticipantStatus `gorm:"type:varchar(10);not null;default:'active';index"`
	JoinedAt       time.Time         `gorm:"not null"`
	LeftAt         *time.Time
	LastReadAt     *time.Time
}

// Message rows are never hard-deleted. Deleted is a tombstone: the row stays
// behind for audit and for replies already pointing at it, but it disappears
// from every listing and last-message computation.
type Message struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID   `gorm:"type:uuid;not null;index:idx_conv_created,priority:1"`
	SenderID       uuid.UUID   `gorm:"type:uuid;not null;index"`
	Content        string      `gorm:"not null"`
	Lang           string      `gorm:"size:8"`
	Type           MessageType `gorm:"type:varchar(16);not null;default:'text'"`
	ReplyToID      *uuid.UUID  `gorm:"type:uuid"`
	IsEdited       bool        `gorm:"not null;default:false"`
	Deleted        bool        `gorm:"not null;default:false"`
	CreatedAt      time.Time   `gorm:"not null;index:idx_conv_created,priority:2"`
	UpdatedAt      time.Time   `gorm:"not null"`
	DeletedAt      *time.Time
}

// ReadReceipt records that a user has seen a message. Inserts are idempotent
// and rows are never mutated or removed.
type ReadReceipt struct {
	MessageID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"not null"`
}
