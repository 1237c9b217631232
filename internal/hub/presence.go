package hub

import "sync"

// Presence maps user identities to their live connection handles. An
// identity has an entry iff at least one of its connections is open. It is
// a pure data structure; callers are responsible for broadcasting presence
// updates after mutating it.
type Presence struct {
	mu      sync.RWMutex
	handles map[string]map[*Client]struct{}
	owners  map[*Client]string
}

// NewPresence creates an empty presence registry.
func NewPresence() *Presence {
	return &Presence{
		handles: make(map[string]map[*Client]struct{}),
		owners:  make(map[*Client]string),
	}
}

// Connect registers the handle under the identity. Registering the same
// handle twice is a no-op.
func (p *Presence) Connect(identity string, c *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handles[identity] == nil {
		p.handles[identity] = make(map[*Client]struct{})
	}
	p.handles[identity][c] = struct{}{}
	p.owners[c] = identity
}

// Disconnect removes the handle from whichever identity holds it. The
// identity entry is removed entirely once its last handle is gone. Unknown
// handles are ignored, so duplicate disconnects are safe.
func (p *Presence) Disconnect(c *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()

	identity, ok := p.owners[c]
	if !ok {
		return
	}
	delete(p.owners, c)

	set := p.handles[identity]
	delete(set, c)
	if len(set) == 0 {
		delete(p.handles, identity)
	}
}

// Identities returns the currently connected user identities.
func (p *Presence) Identities() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	identities := make([]string, 0, len(p.handles))
	for identity := range p.handles {
		identities = append(identities, identity)
	}
	return identities
}

// Handles returns the connection handles for an identity. The slice is empty
// if the identity is not connected.
func (p *Presence) Handles(identity string) []*Client {
	p.mu.RLock()
	defer p.mu.RUnlock()

	set := p.handles[identity]
	clients := make([]*Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	return clients
}

// AllHandles returns every connected handle across all identities.
func (p *Presence) AllHandles() []*Client {
	p.mu.RLock()
	defer p.mu.RUnlock()

	clients := make([]*Client, 0, len(p.owners))
	for c := range p.owners {
		clients = append(clients, c)
	}
	return clients
}

// ConnectionCount returns the number of open connections.
func (p *Presence) ConnectionCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.owners)
}
