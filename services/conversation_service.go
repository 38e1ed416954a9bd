package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"community-messaging/cache"
	"community-messaging/contract"
	"community-messaging/domain/messaging"
	"community-messaging/errors"
	"community-messaging/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IConversationService interface {
	Create(ctx context.Context, cmd messaging.CreateConversationCommand) (*messaging.ConversationView, error)
	Rename(ctx context.Context, cmd messaging.RenameConversationCommand) error
	AddMembers(ctx context.Context, cmd messaging.AddMembersCommand) error
	RemoveMember(ctx context.Context, cmd messaging.RemoveMemberCommand) error
	MakeAdmin(ctx context.Context, cmd messaging.MakeAdminCommand) error
	Get(ctx context.Context, conversationID, requesterID uuid.UUID) (*messaging.ConversationView, error)
	List(ctx context.Context, cmd messaging.ListConversationsCommand) (*messaging.ConversationPage, error)
}

type ConversationService struct {
	validate      *validator.Validate
	access        IAccessControl
	conversations repositories.IConversationRepository
	messages      repositories.IMessageRepository
	receipts      repositories.IReadReceiptRepository
	directory     contract.IUserDirectory
	participants  *cache.ParticipantCache
	log           *slog.Logger
}

func NewConversationService(
	access IAccessControl,
	conversations repositories.IConversationRepository,
	messages repositories.IMessageRepository,
	receipts repositories.IReadReceiptRepository,
	directory contract.IUserDirectory,
	participants *cache.ParticipantCache,
	log *slog.Logger,
) IConversationService {
	return &ConversationService{
		validate:      validator.New(),
		access:        access,
		conversations: conversations,
		messages:      messages,
		receipts:      receipts,
		directory:     directory,
		participants:  participants,
		log:           log,
	}
}

// Create assembles the deduplicated member set, validates everyone against
// the user directory and inserts conversation, participants and the creation
// system message atomically. Direct conversations are idempotent per
// unordered pair: an existing one is returned instead of a duplicate, and a
// member who had left the pair is brought back as part of the call.
func (s *ConversationService) Create(ctx context.Context, cmd messaging.CreateConversationCommand) (*messaging.ConversationView, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}

	memberIDs := lo.Uniq(append([]uuid.UUID{cmd.CreatorID}, cmd.ParticipantIDs...))
	profiles, err := s.activeProfiles(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	if cmd.IsGroup && strings.TrimSpace(cmd.Name) == "" {
		return nil, errors.ErrGroupNameRequired
	}

	var directKey *string
	if !cmd.IsGroup {
		if len(memberIDs) != 2 {
			return nil, errors.ErrDirectPairSize
		}
		key := messaging.DirectKey(memberIDs[0], memberIDs[1])
		existing, err := s.conversations.FindDirectByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if err := s.reopenDirect(ctx, existing.ID, memberIDs, profiles); err != nil {
				return nil, err
			}
			s.log.Debug("direct conversation already exists", "conversation", existing.ID)
			return s.Get(ctx, existing.ID, cmd.CreatorID)
		}
		directKey = &key
	}

	now := time.Now().UTC()
	conv := messaging.Conversation{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(cmd.Name),
		IsGroup:   cmd.IsGroup,
		DirectKey: directKey,
		CreatedBy: cmd.CreatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	participants := lo.Map(memberIDs, func(id uuid.UUID, _ int) messaging.Participant {
		return messaging.Participant{
			ConversationID: conv.ID,
			UserID:         id,
			IsAdmin:        id == cmd.CreatorID,
			Status:         messaging.ParticipantActive,
			JoinedAt:       now,
		}
	})

	content := fmt.Sprintf("%s started the conversation", profiles[cmd.CreatorID].DisplayName)
	if cmd.IsGroup {
		content = fmt.Sprintf("%s created the group %q", profiles[cmd.CreatorID].DisplayName, conv.Name)
	}
	sysMsg := newSystemMessage(conv.ID, cmd.CreatorID, content, now)

	if err := s.conversations.Create(ctx, &conv, participants, sysMsg); err != nil {
		if directKey != nil {
			// Lost a first-contact race: the unique direct key made the
			// other insert win, so converge on that row.
			winner, findErr := s.conversations.FindDirectByKey(ctx, *directKey)
			if findErr == nil && winner != nil {
				if err := s.reopenDirect(ctx, winner.ID, memberIDs, profiles); err != nil {
					return nil, err
				}
				s.log.Info("direct creation race resolved", "conversation", winner.ID)
				return s.Get(ctx, winner.ID, cmd.CreatorID)
			}
		}
		return nil, err
	}

	s.log.Info("conversation created",
		"conversation", conv.ID, "group", conv.IsGroup, "members", len(participants))
	return s.Get(ctx, conv.ID, cmd.CreatorID)
}

// reopenDirect brings back any member of the pair who previously left the
// existing direct conversation. Starting the conversation again works like a
// fresh first contact instead of dead-ending on a row the creator can no
// longer see.
func (s *ConversationService) reopenDirect(ctx context.Context, conversationID uuid.UUID, memberIDs []uuid.UUID, profiles map[uuid.UUID]messaging.UserProfile) error {
	activeIDs, err := s.conversations.ActiveParticipantIDs(ctx, conversationID)
	if err != nil {
		return err
	}
	returning := lo.Without(memberIDs, activeIDs...)
	if len(returning) == 0 {
		return nil
	}

	names := lo.Map(returning, func(id uuid.UUID, _ int) string {
		return profiles[id].DisplayName
	})
	sysMsg := newSystemMessage(conversationID, returning[0],
		fmt.Sprintf("%s rejoined the conversation", strings.Join(names, ", ")), time.Now().UTC())

	if err := s.conversations.AddMembers(ctx, conversationID, returning, sysMsg); err != nil {
		return err
	}
	s.participants.Delete(conversationID)
	s.log.Info("direct conversation reopened",
		"conversation", conversationID, "returning", len(returning))
	return nil
}

func (s *ConversationService) Rename(ctx context.Context, cmd messaging.RenameConversationCommand) error {
	if err := s.validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}
	if err := s.access.VerifyAdmin(ctx, cmd.ConversationID, cmd.ActorID); err != nil {
		return err
	}

	actor, err := s.directory.Profile(ctx, cmd.ActorID)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(cmd.Name)
	sysMsg := newSystemMessage(cmd.ConversationID, cmd.ActorID,
		fmt.Sprintf("%s renamed the conversation to %q", actor.DisplayName, name), time.Now().UTC())

	if err := s.conversations.Rename(ctx, cmd.ConversationID, name, sysMsg); err != nil {
		return err
	}
	s.participants.Delete(cmd.ConversationID)
	return nil
}

// AddMembers is group-only and admin-only. A previously-left member comes
// back as a plain member; users already active are skipped silently. One
// system message names everyone actually added.
func (s *ConversationService) AddMembers(ctx context.Context, cmd messaging.AddMembersCommand) error {
	if err := s.validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}
	if err := s.access.VerifyAdmin(ctx, cmd.ConversationID, cmd.ActorID); err != nil {
		return err
	}
	conv, err := s.conversations.GetByID(ctx, cmd.ConversationID)
	if err != nil {
		return err
	}
	if !conv.IsGroup {
		return errors.ErrNotAGroup
	}

	candidates := lo.Uniq(cmd.MemberIDs)
	profiles, err := s.activeProfiles(ctx, candidates)
	if err != nil {
		return err
	}

	activeIDs, err := s.conversations.ActiveParticipantIDs(ctx, cmd.ConversationID)
	if err != nil {
		return err
	}
	newcomers := lo.Without(candidates, activeIDs...)
	if len(newcomers) == 0 {
		return nil
	}

	names := lo.Map(newcomers, func(id uuid.UUID, _ int) string {
		return profiles[id].DisplayName
	})
	sysMsg := newSystemMessage(cmd.ConversationID, cmd.ActorID,
		fmt.Sprintf("%s joined the group", strings.Join(names, ", ")), time.Now().UTC())

	if err := s.conversations.AddMembers(ctx, cmd.ConversationID, newcomers, sysMsg); err != nil {
		return err
	}
	s.participants.Delete(cmd.ConversationID)
	s.log.Info("members added", "conversation", cmd.ConversationID, "count", len(newcomers))
	return nil
}

// RemoveMember needs admin rights unless the actor removes themselves:
// self-leave is always allowed.
func (s *ConversationService) RemoveMember(ctx context.Context, cmd messaging.RemoveMemberCommand) error {
	if err := s.validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}

	selfLeave := cmd.ActorID == cmd.TargetID
	if selfLeave {
		if err := s.access.VerifyParticipant(ctx, cmd.ConversationID, cmd.ActorID); err != nil {
			return err
		}
	} else if err := s.access.VerifyAdmin(ctx, cmd.ConversationID, cmd.ActorID); err != nil {
		return err
	}

	target, err := s.directory.Profile(ctx, cmd.TargetID)
	if err != nil {
		return err
	}
	content := fmt.Sprintf("%s was removed", target.DisplayName)
	if selfLeave {
		content = fmt.Sprintf("%s left the conversation", target.DisplayName)
	}
	sysMsg := newSystemMessage(cmd.ConversationID, cmd.ActorID, content, time.Now().UTC())

	if err := s.conversations.SetLeft(ctx, cmd.ConversationID, cmd.TargetID, sysMsg); err != nil {
		return err
	}
	s.participants.Delete(cmd.ConversationID)
	s.log.Info("member removed",
		"conversation", cmd.ConversationID, "target", cmd.TargetID, "self", selfLeave)
	return nil
}

// MakeAdmin does not touch the cache: admin status is never cached.
func (s *ConversationService) MakeAdmin(ctx context.Context, cmd messaging.MakeAdminCommand) error {
	if err := s.validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}
	if err := s.access.VerifyAdmin(ctx, cmd.ConversationID, cmd.ActorID); err != nil {
		return err
	}

	target, err := s.directory.Profile(ctx, cmd.TargetID)
	if err != nil {
		return err
	}
	sysMsg := newSystemMessage(cmd.ConversationID, cmd.ActorID,
		fmt.Sprintf("%s is now an admin", target.DisplayName), time.Now().UTC())

	return s.conversations.SetAdmin(ctx, cmd.ConversationID, cmd.TargetID, sysMsg)
}

// Get returns the fully assembled conversation as the requester sees it:
// metadata, active participants, last non-deleted message and the
// requester's unread count.
func (s *ConversationService) Get(ctx context.Context, conversationID, requesterID uuid.UUID) (*messaging.ConversationView, error) {
	if err := s.access.VerifyParticipant(ctx, conversationID, requesterID); err != nil {
		return nil, err
	}
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return s.assembleView(ctx, *conv, requesterID)
}

func (s *ConversationService) List(ctx context.Context, cmd messaging.ListConversationsCommand) (*messaging.ConversationPage, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}

	boundary, err := decodeOptionalCursor(cmd.Cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}

	// One extra row tells us whether another page exists without a
	// separate count query.
	conversations, err := s.conversations.ListForUser(ctx, cmd.UserID, cmd.Limit+1, boundary)
	if err != nil {
		return nil, err
	}

	page := &messaging.ConversationPage{HasMore: len(conversations) > cmd.Limit}
	if page.HasMore {
		conversations = conversations[:cmd.Limit]
	}

	for _, conv := range conversations {
		view, err := s.assembleView(ctx, conv, cmd.UserID)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, *view)
	}
	if page.HasMore && len(conversations) > 0 {
		cursor := repositories.EncodeCursor(conversations[len(conversations)-1].UpdatedAt)
		page.NextCursor = &cursor
	}
	return page, nil
}

func (s *ConversationService) assembleView(ctx context.Context, conv messaging.Conversation, requesterID uuid.UUID) (*messaging.ConversationView, error) {
	participants, err := s.conversations.ActiveParticipants(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	ids := lo.Map(participants, func(p messaging.Participant, _ int) uuid.UUID { return p.UserID })
	profiles, err := s.directory.Profiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &messaging.ConversationView{Conversation: conv}
	for _, p := range participants {
		profile := profiles[p.UserID]
		view.Participants = append(view.Participants, messaging.ParticipantView{
			Participant: p,
			DisplayName: profile.DisplayName,
			AvatarURL:   profile.AvatarURL,
		})
	}

	last, err := s.messages.LastMessage(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		views, err := buildMessageViews(ctx, s.directory, s.messages, []messaging.Message{*last})
		if err != nil {
			return nil, err
		}
		view.LastMessage = &views[0]
	}

	unread, err := s.receipts.UnreadCount(ctx, conv.ID, requesterID)
	if err != nil {
		return nil, err
	}
	view.UnreadCount = unread
	return view, nil
}

// activeProfiles loads directory profiles and rejects any reference to a
// user that does not exist or is inactive.
func (s *ConversationService) activeProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]messaging.UserProfile, error) {
	profiles, err := s.directory.Profiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		profile, ok := profiles[id]
		if !ok || !profile.Active {
			return nil, fmt.Errorf("%w: %s", errors.ErrUnknownUser, id)
		}
	}
	return profiles, nil
}

func newSystemMessage(conversationID, actorID uuid.UUID, content string, at time.Time) *messaging.Message {
	return &messaging.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       actorID,
		Content:        content,
		Type:           messaging.MessageTypeSystem,
		CreatedAt:      at,
		UpdatedAt:      at,
	}
}
