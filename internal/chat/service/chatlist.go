package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"tradeforce/internal/common"
	"tradeforce/internal/models"
)

// GetChatList returns one entry per user that userID has exchanged messages
// with, carrying that peer's public profile and how many of their messages
// userID has not read. Any failed profile lookup fails the whole list.
func (s *chatService) GetChatList(ctx context.Context, userID string) ([]*models.ChatListEntry, error) {
	userID, err := common.RequireField("userId", userID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messages.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, common.PersistenceError("failed to load messages", err)
	}
	if len(msgs) == 0 {
		return []*models.ChatListEntry{}, nil
	}

	unread := CountUnread(msgs, userID)
	peers := distinctPeers(msgs, userID)
	entries := make([]*models.ChatListEntry, len(peers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.peerLimit)
	for i, peerID := range peers {
		i, peerID := i, peerID
		g.Go(func() error {
			peer, err := s.users.FindByID(gctx, peerID)
			if err != nil {
				return err
			}
			entries[i] = models.NewChatListEntry(peer, unread[peerID])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, common.PersistenceError("failed to load chat list", err)
	}
	return entries, nil
}

// distinctPeers lists the other party of every message once, in first-seen order.
func distinctPeers(msgs []*models.Message, userID string) []string {
	seen := make(map[string]struct{}, len(msgs))
	peers := make([]string, 0, len(msgs))
	for _, m := range msgs {
		peer := m.OtherParty(userID)
		if peer == "" || peer == userID {
			continue
		}
		if _, ok := seen[peer]; ok {
			continue
		}
		seen[peer] = struct{}{}
		peers = append(peers, peer)
	}
	return peers
}
