// Operator CLI: prints a user's unread state straight from the store,
// bypassing the service process, for support and debugging sessions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"community-messaging/repositories"
	"community-messaging/storage"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "messaging.db", "Path to the SQLite database")
	user := flag.String("user", "", "User UUID to report on")
	flag.Parse()

	userID, err := uuid.Parse(*user)
	if err != nil {
		log.Fatalf("-user must be a UUID: %v", err)
	}

	db, err := storage.Open(*dbPath, 5*time.Second)
	if err != nil {
		log.Fatal("Error while opening database: ", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	receipts := repositories.NewReadReceiptRepository(db, logger)
	conversations := repositories.NewConversationRepository(db, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	counts, err := receipts.UnreadByConversation(ctx, userID)
	if err != nil {
		log.Fatal("Error while aggregating unread counts: ", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Conversation", "Name", "Group", "Last Activity", "Unread"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	var total int64
	for _, c := range counts {
		conv, err := conversations.GetByID(ctx, c.ConversationID)
		if err != nil {
			log.Fatal("Error while loading conversation: ", err)
		}

		name := conv.Name
		if name == "" {
			name = "(direct)"
		}
		table.Append([]string{
			c.ConversationID.String(),
			name,
			fmt.Sprintf("%t", conv.IsGroup),
			c.LastActivityAt.Format(time.RFC822),
			fmt.Sprintf("%d", c.Count),
		})
		total += c.Count
	}
	table.Render()

	if total > 0 {
		color.Warn.Printf("\n%d unread message(s) across %d conversation(s)\n", total, len(counts))
	} else {
		color.Success.Printf("\nAll caught up: %d conversation(s), nothing unread\n", len(counts))
	}
}
