// Package storage owns the relational store: opening the database, running
// migrations and gathering the repositories in a single container.
package storage

import (
	"fmt"
	"log/slog"
	"time"

	"community-messaging/domain/messaging"
	"community-messaging/repositories"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to SQLite through the pure-Go driver. The busy timeout
// bounds every statement so no storage call blocks indefinitely; exceeding
// it surfaces as a retryable failure to the caller.
func Open(path string, busyTimeout time.Duration) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)",
		path, busyTimeout.Milliseconds())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every messaging entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&messaging.Conversation{},
		&messaging.Participant{},
		&messaging.Message{},
		&messaging.ReadReceipt{},
	)
}

// Manager gathers the repositories needed by the messaging core in a single
// container, so wiring stays in one place.
type Manager struct {
	db *gorm.DB

	conversations repositories.IConversationRepository
	messages      repositories.IMessageRepository
	receipts      repositories.IReadReceiptRepository
}

func NewManager(db *gorm.DB, log *slog.Logger) *Manager {
	return &Manager{
		db:            db,
		conversations: repositories.NewConversationRepository(db, log),
		messages:      repositories.NewMessageRepository(db, log),
		receipts:      repositories.NewReadReceiptRepository(db, log),
	}
}

func (m *Manager) Conversations() repositories.IConversationRepository { return m.conversations }

func (m *Manager) Messages() repositories.IMessageRepository { return m.messages }

func (m *Manager) Receipts() repositories.IReadReceiptRepository { return m.receipts }

// TableCounts reports row counts per table for the debug endpoint.
func (m *Manager) TableCounts() (map[string]int64, error) {
	counts := map[string]int64{}
	for name, model := range map[string]any{
		"conversations": &messaging.Conversation{},
		"participants":  &messaging.Participant{},
		"messages":      &messaging.Message{},
		"read_receipts": &messaging.ReadReceipt{},
	} {
		var count int64
		if err := m.db.Model(model).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		counts[name] = count
	}
	return counts, nil
}
