package service

import "tradeforce/internal/models"

// CountUnread groups the unread messages addressed to recipientID by sender.
// Senders with nothing unread are absent from the result.
func CountUnread(msgs []*models.Message, recipientID string) map[string]int {
	counts := make(map[string]int)
	for _, m := range msgs {
		if m.IsUnread && m.ToUserID == recipientID {
			counts[m.FromUserID]++
		}
	}
	return counts
}
