package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"konnect/internal/models"
	"konnect/internal/repository"
)

const maxMessageLength = 2000

// EventNewMessage is pushed to the receiver when a message arrives
const EventNewMessage = "message.new"

// Notifier pushes live events to connected clients
type Notifier interface {
	Notify(userID uint, event string, payload interface{})
}

// MessageService handles direct messaging between users
type MessageService struct {
	repo     *repository.Repository
	notifier Notifier
}

// NewMessageService creates a new MessageService. notifier may be nil.
func NewMessageService(repo *repository.Repository, notifier Notifier) *MessageService {
	return &MessageService{repo: repo, notifier: notifier}
}

// ChatPartner is a user that can be messaged
type ChatPartner struct {
	ID          uint        `json:"id"`
	DisplayName string      `json:"display_name"`
	Role        models.Role `json:"role"`
	Unread      int64       `json:"unread"`
}

// ConversationSummary is one row of the inbox
type ConversationSummary struct {
	Partner     ChatPartner    `json:"partner"`
	LastMessage models.Message `json:"last_message"`
}

// Send stores a message from senderID to receiverID and notifies the receiver
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content", "message cannot be empty")
	}
	if len(content) > maxMessageLength {
		return nil, invalid("content", fmt.Sprintf("message must be at most %d characters", maxMessageLength))
	}
	if senderID == receiverID {
		return nil, invalid("receiverId", "you cannot message yourself")
	}

	receiver, err := s.repo.GetUserByID(ctx, receiverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invalid("receiverId", "recipient not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}
	if receiver.Banned {
		return nil, invalid("receiverId", "this user can no longer receive messages")
	}

	msg := &models.Message{
		SenderUserID:   senderID,
		ReceiverUserID: receiverID,
		Content:        content,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Notify(receiverID, EventNewMessage, msg)
	}
	return msg, nil
}

// Conversation returns the latest messages with partnerID, newest first,
// and marks the partner's messages to userID as read.
func (s *MessageService) Conversation(ctx context.Context, userID, partnerID uint, page int) ([]models.Message, error) {
	if _, err := s.repo.GetUserByID(ctx, partnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user")
		}
		return nil, err
	}

	messages, err := s.repo.ListConversation(ctx, userID, partnerID, pageWindow(page, ConversationLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if _, err := s.repo.MarkConversationRead(ctx, userID, partnerID); err != nil {
		return nil, fmt.Errorf("failed to mark messages read: %w", err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// ChatPartners lists everyone userID can message with their unread counts
func (s *MessageService) ChatPartners(ctx context.Context, userID uint) ([]ChatPartner, error) {
	users, err := s.repo.ListChatPartners(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	unread, err := s.repo.CountUnreadBySender(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}

	partners := make([]ChatPartner, 0, len(users))
	for i := range users {
		partners = append(partners, toChatPartner(&users[i], unread))
	}
	return partners, nil
}

// Conversations returns the newest message of every conversation userID takes part in
func (s *MessageService) Conversations(ctx context.Context, userID uint) ([]ConversationSummary, error) {
	latest, err := s.repo.LatestMessagesPerPartner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversations: %w", err)
	}
	unread, err := s.repo.CountUnreadBySender(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}

	summaries := make([]ConversationSummary, 0, len(latest))
	for _, msg := range latest {
		partner, err := s.repo.GetUserByID(ctx, msg.PartnerOf(userID))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ConversationSummary{
			Partner:     toChatPartner(partner, unread),
			LastMessage: msg,
		})
	}
	return summaries, nil
}

// UnreadCount returns how many messages userID has not read yet
func (s *MessageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func toChatPartner(u *models.User, unread map[uint]int64) ChatPartner {
	return ChatPartner{
		ID:          u.ID,
		DisplayName: u.DisplayName(),
		Role:        u.Role,
		Unread:      unread[u.ID],
	}
}
