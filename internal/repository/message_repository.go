package repository

import (
	"context"

	"konnect/internal/models"
)

// CreateMessage inserts a chat message
func (r *Repository) CreateMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListConversation returns messages exchanged between a and b in either direction, newest first
func (r *Repository) ListConversation(ctx context.Context, a, b uint, page Page) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_user_id = ? AND receiver_user_id = ?) OR (sender_user_id = ? AND receiver_user_id = ?)", a, b, b, a).
		Order("sent_at DESC").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkConversationRead marks unread messages from sender to receiver as read
func (r *Repository) MarkConversationRead(ctx context.Context, receiverID, senderID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_user_id = ? AND sender_user_id = ? AND is_read = ?", receiverID, senderID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// LatestMessagesPerPartner returns the most recent message of each conversation userID takes part in
func (r *Repository) LatestMessagesPerPartner(ctx context.Context, userID uint) ([]models.Message, error) {
	perPartner := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Select("CASE WHEN sender_user_id = ? THEN receiver_user_id ELSE sender_user_id END AS partner_id, MAX(id) AS last_id", userID).
		Where("sender_user_id = ? OR receiver_user_id = ?", userID, userID).
		Group("partner_id")

	latest := r.db.WithContext(ctx).Table("(?) AS latest", perPartner).Select("last_id")

	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("id IN (?)", latest).
		Order("id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// CountUnread returns the number of unread messages addressed to userID
func (r *Repository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_user_id = ? AND is_read = ?", userID, false).
		Count(&total).Error
	return total, err
}

// CountUnreadBySender returns unread message counts addressed to userID keyed by sender
func (r *Repository) CountUnreadBySender(ctx context.Context, userID uint) (map[uint]int64, error) {
	var rows []struct {
		SenderUserID uint
		Total        int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Select("sender_user_id, COUNT(*) AS total").
		Where("receiver_user_id = ? AND is_read = ?", userID, false).
		Group("sender_user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.SenderUserID] = row.Total
	}
	return counts, nil
}
