package models

import "time"

// Message is a direct chat message between two users
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SenderUserID   uint      `gorm:"not null;index" json:"sender_user_id"`
	Sender         *User     `gorm:"foreignKey:SenderUserID" json:"-"`
	ReceiverUserID uint      `gorm:"not null;index" json:"receiver_user_id"`
	Receiver       *User     `gorm:"foreignKey:ReceiverUserID" json:"-"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	SentAt         time.Time `gorm:"autoCreateTime;index" json:"sent_at"`
	IsRead         bool      `gorm:"not null;default:false" json:"is_read"`
}

func (Message) TableName() string {
	return "messages"
}

// PartnerOf returns the other participant of the conversation from userID's side.
func (m *Message) PartnerOf(userID uint) uint {
	if m.SenderUserID == userID {
		return m.ReceiverUserID
	}
	return m.SenderUserID
}
