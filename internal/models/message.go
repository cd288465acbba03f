package models

import "time"

// Message is a direct message between two users. Only IsUnread ever changes
// after creation.
type Message struct {
	ID         string    `json:"_id"`
	FromUserID string    `json:"fromUserId"`
	ToUserID   string    `json:"toUserId"`
	Content    string    `json:"content"`
	Date       time.Time `json:"date"`
	IsUnread   bool      `json:"isUnread"`
}

// OtherParty returns the participant that is not userID.
func (m *Message) OtherParty(userID string) string {
	if m.FromUserID == userID {
		return m.ToUserID
	}
	return m.FromUserID
}

// Involves reports whether userID sent or received the message.
func (m *Message) Involves(userID string) bool {
	return m.FromUserID == userID || m.ToUserID == userID
}
