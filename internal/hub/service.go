package hub

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/chathub/backend/internal/model"
)

// ChannelStore is the durable store for channel records. It is satisfied by
// repository.ChannelRepository.
type ChannelStore interface {
	List(ctx context.Context) ([]*model.Channel, error)
	Insert(ctx context.Context, title string) (*model.Channel, error)
	Find(ctx context.Context, id int64) (*model.Channel, error)
	Delete(ctx context.Context, id int64) error
}

// Service owns the runtime hub state (presence registry, membership table,
// router) and implements the channel lifecycle on top of it. Persistence
// calls are made before in-memory state is touched, so the tables' locks are
// never held across the database.
type Service struct {
	presence   *Presence
	membership *Membership
	router     *Router
	store      ChannelStore
}

// NewService creates a hub service with empty runtime state.
func NewService(store ChannelStore) *Service {
	presence := NewPresence()
	membership := NewMembership()
	return &Service{
		presence:   presence,
		membership: membership,
		router:     NewRouter(presence, membership),
		store:      store,
	}
}

// Presence returns the presence registry.
func (s *Service) Presence() *Presence {
	return s.presence
}

// Membership returns the membership table.
func (s *Service) Membership() *Membership {
	return s.membership
}

// Router returns the router.
func (s *Service) Router() *Router {
	return s.router
}

// Connect registers a new connection under its identity, pushes the current
// channel list to it, and broadcasts the updated presence list.
func (s *Service) Connect(ctx context.Context, c *Client) {
	s.presence.Connect(c.Identity(), c)
	log.Printf("Client %s connected as %s. Total connections: %d",
		c.ID(), c.Identity(), s.presence.ConnectionCount())

	channels, err := s.store.List(ctx)
	if err != nil {
		log.Printf("Failed to list channels for new client %s: %v", c.ID(), err)
	} else {
		c.Send(channelsPayload(channels))
	}

	s.broadcastPresence()
}

// Disconnect removes a connection from its channel and from the presence
// registry and broadcasts the updated presence list. It is safe to call for
// connections that never completed Connect, and safe to call twice.
func (s *Service) Disconnect(c *Client) {
	s.membership.Leave(c)
	s.presence.Disconnect(c)
	c.Close()

	log.Printf("Client %s disconnected. Total connections: %d",
		c.ID(), s.presence.ConnectionCount())
	s.broadcastPresence()
}

// CreateChannel persists a new channel and broadcasts the updated channel
// list to every connection.
func (s *Service) CreateChannel(ctx context.Context, title string) (*model.Channel, error) {
	if title == "" {
		return nil, model.ErrTitleRequired
	}

	channel, err := s.store.Insert(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	s.broadcastChannelList(ctx)
	return channel, nil
}

// DeleteChannel removes a channel record and tears down its runtime group:
// the members get a destruction notice and a forced-leave push while they
// are still recorded as members, then the membership set is cleared and the
// updated channel list goes out to everyone. A missing channel is a no-op.
func (s *Service) DeleteChannel(ctx context.Context, id int64) error {
	channel, err := s.store.Find(ctx, id)
	if errors.Is(err, model.ErrChannelNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	// The teardown below must still run if another deletion raced us past
	// this point.
	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, model.ErrChannelNotFound) {
		return err
	}

	s.router.Route(chatPayload(fmt.Sprintf("[%s] channel has been deleted", channel.Title)), ToChannel(id))
	s.router.Route(forceLeavePayload(), ToChannel(id))
	evicted := s.membership.RemoveChannel(id)
	log.Printf("Deleted channel %d (%s), evicted %d members", id, channel.Title, len(evicted))

	s.broadcastChannelList(ctx)
	return nil
}

// SwitchChannel moves a connection between channel groups. The old channel's
// audience is told the user left before the membership changes, so the
// departing identity is still meaningful to them; the new channel's audience
// (which includes the joiner) is told afterwards. newID of model.NoChannel
// leaves the current channel without joining another.
func (s *Service) SwitchChannel(ctx context.Context, c *Client, oldID, newID int64) error {
	var newChannel *model.Channel
	if newID != model.NoChannel {
		var err error
		newChannel, err = s.store.Find(ctx, newID)
		if err != nil {
			return err
		}
	}

	if oldID != model.NoChannel {
		if old, err := s.store.Find(ctx, oldID); err == nil {
			s.router.Route(chatPayload(fmt.Sprintf("[%s] %s left the channel", old.Title, c.Identity())), ToChannel(oldID))
		}
	}

	s.membership.Join(c, newID)

	if newChannel != nil {
		s.router.Route(chatPayload(fmt.Sprintf("[%s] %s joined the channel", newChannel.Title, c.Identity())), ToChannel(newID))
	}
	return nil
}

// SendMessage routes a chat message. A present, non-empty target identity
// always selects direct delivery, even when a channel id is also supplied;
// otherwise a positive channel id selects the channel scope, and everything
// else is a broadcast. Unknown channel ids and disconnected targets are
// silent no-ops.
func (s *Service) SendMessage(ctx context.Context, sender string, text string, channelID int64, target string) {
	if target != "" {
		s.router.Route(chatPayload(fmt.Sprintf("[%s] %s", sender, text)), ToUser(target))
		return
	}

	if channelID != model.NoChannel {
		channel, err := s.store.Find(ctx, channelID)
		if err != nil {
			if !errors.Is(err, model.ErrChannelNotFound) {
				log.Printf("Failed to resolve channel %d for message: %v", channelID, err)
			}
			return
		}
		s.router.Route(chatPayload(fmt.Sprintf("[%s] %s", channel.Title, text)), ToChannel(channelID))
		return
	}

	s.router.Route(chatPayload(fmt.Sprintf("[everyone] %s", text)), Broadcast())
}

// StartDirectChat acknowledges a direct-chat request. The intent lives
// client-side; the server only confirms it to the requesting connection.
func (s *Service) StartDirectChat(c *Client, target string) {
	c.Send(chatPayload(fmt.Sprintf("[%s] direct chat started", target)))
}

// ListChannels returns the durable channel records.
func (s *Service) ListChannels(ctx context.Context) ([]*model.Channel, error) {
	return s.store.List(ctx)
}

func (s *Service) broadcastChannelList(ctx context.Context) {
	channels, err := s.store.List(ctx)
	if err != nil {
		log.Printf("Failed to list channels for broadcast: %v", err)
		return
	}
	s.router.Route(channelsPayload(channels), Broadcast())
}

func (s *Service) broadcastPresence() {
	s.router.Route(presencePayload(s.presence.Identities()), Broadcast())
}
