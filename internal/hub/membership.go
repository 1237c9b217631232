package hub

import (
	"sync"

	"github.com/chathub/backend/internal/model"
)

// Membership maps channel ids to the connections currently subscribed to
// them. A connection belongs to at most one channel at a time; joining a new
// channel atomically removes the connection from the old one. Channel id 0
// (model.NoChannel) means "no channel" and never has a membership set.
type Membership struct {
	mu      sync.RWMutex
	members map[int64]map[*Client]struct{}
	current map[*Client]int64
}

// NewMembership creates an empty membership table.
func NewMembership() *Membership {
	return &Membership{
		members: make(map[int64]map[*Client]struct{}),
		current: make(map[*Client]int64),
	}
}

// Join moves the handle into the given channel's set, removing it first from
// whichever channel held it. It returns the previous channel id, or
// model.NoChannel if the handle was not in a channel. Passing
// model.NoChannel as channelID leaves the current channel without joining
// another.
func (m *Membership) Join(c *Client, channelID int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	old := m.removeLocked(c)
	if channelID == model.NoChannel {
		return old
	}

	if m.members[channelID] == nil {
		m.members[channelID] = make(map[*Client]struct{})
	}
	m.members[channelID][c] = struct{}{}
	m.current[c] = channelID
	return old
}

// Leave removes the handle from its current channel, if any, and returns the
// channel id it left.
func (m *Membership) Leave(c *Client) int64 {
	return m.Join(c, model.NoChannel)
}

// removeLocked takes the handle out of its current channel and returns the
// channel id it was in. Callers must hold the write lock.
func (m *Membership) removeLocked(c *Client) int64 {
	old, ok := m.current[c]
	if !ok {
		return model.NoChannel
	}
	delete(m.current, c)

	set := m.members[old]
	delete(set, c)
	if len(set) == 0 {
		delete(m.members, old)
	}
	return old
}

// Current returns the channel the handle is in, or model.NoChannel.
func (m *Membership) Current(c *Client) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if id, ok := m.current[c]; ok {
		return id
	}
	return model.NoChannel
}

// MembersOf returns the handles currently in the channel. The slice is empty
// if the channel has no members or does not exist.
func (m *Membership) MembersOf(channelID int64) []*Client {
	m.mu.RLock()
	defer m.mu.RUnlock()

	set := m.members[channelID]
	clients := make([]*Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	return clients
}

// RemoveChannel clears the membership set for a deleted channel and returns
// the handles that were members, so the caller can notify them.
func (m *Membership) RemoveChannel(channelID int64) []*Client {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := m.members[channelID]
	clients := make([]*Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
		delete(m.current, c)
	}
	delete(m.members, channelID)
	return clients
}
