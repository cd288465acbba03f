// Package models holds the records shared by the chat core and the stores.
package models

// User is the slice of the marketplace user record the chat core reads.
// Only IsOnline and SocketID are ever written from here.
type User struct {
	ID         string `json:"_id"`
	UserName   string `json:"userName"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	ProfilePic string `json:"profilePic"`
	IsOnline   bool   `json:"isOnline"`
	SocketID   string `json:"socketId,omitempty"`
}

// PublicUser is what other users get to see. The socket handle stays private.
type PublicUser struct {
	ID         string `json:"_id"`
	UserName   string `json:"userName"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	ProfilePic string `json:"profilePic"`
	IsOnline   bool   `json:"isOnline"`
}

func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:         u.ID,
		UserName:   u.UserName,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		ProfilePic: u.ProfilePic,
		IsOnline:   u.IsOnline,
	}
}

// ChatListEntry is one peer in a user's chat list.
type ChatListEntry struct {
	PublicUser
	UnreadCount int `json:"unreadCount"`
}

func NewChatListEntry(u *User, unread int) *ChatListEntry {
	return &ChatListEntry{
		PublicUser:  *u.Public(),
		UnreadCount: unread,
	}
}
