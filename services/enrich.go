package services

import (
	"context"
	"time"

	"community-messaging/contract"
	"community-messaging/domain/messaging"
	"community-messaging/repositories"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// replyPreviewLimit caps the echoed reply content, in runes.
const replyPreviewLimit = 100

// buildMessageViews enriches raw message rows with sender display data and,
// where a reply reference exists, a truncated preview of the target. Reply
// targets are resolved even when tombstoned: replies recorded before a
// deletion stay readable.
func buildMessageViews(ctx context.Context, directory contract.IUserDirectory, messages repositories.IMessageRepository, msgs []messaging.Message) ([]messaging.MessageView, error) {
	if len(msgs) == 0 {
		return nil, nil
	}

	senderIDs := lo.Uniq(lo.Map(msgs, func(m messaging.Message, _ int) uuid.UUID {
		return m.SenderID
	}))

	replyTargets := map[uuid.UUID]*messaging.Message{}
	for _, m := range msgs {
		if m.ReplyToID == nil {
			continue
		}
		if _, seen := replyTargets[*m.ReplyToID]; seen {
			continue
		}
		target, err := messages.GetByID(ctx, *m.ReplyToID)
		if err != nil {
			return nil, err
		}
		replyTargets[*m.ReplyToID] = target
		senderIDs = append(senderIDs, target.SenderID)
	}

	profiles, err := directory.Profiles(ctx, lo.Uniq(senderIDs))
	if err != nil {
		return nil, err
	}

	views := make([]messaging.MessageView, 0, len(msgs))
	for _, m := range msgs {
		view := messaging.MessageView{
			Message:      m,
			SenderName:   profiles[m.SenderID].DisplayName,
			SenderAvatar: profiles[m.SenderID].AvatarURL,
		}
		if m.ReplyToID != nil {
			if target := replyTargets[*m.ReplyToID]; target != nil {
				view.ReplyPreview = &messaging.ReplyPreview{
					MessageID:  target.ID,
					SenderName: profiles[target.SenderID].DisplayName,
					Content:    truncateRunes(target.Content, replyPreviewLimit),
				}
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func decodeOptionalCursor(cursor *string) (*time.Time, error) {
	if cursor == nil || *cursor == "" {
		return nil, nil
	}
	boundary, err := repositories.DecodeCursor(*cursor)
	if err != nil {
		return nil, err
	}
	return &boundary, nil
}
