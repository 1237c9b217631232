package hub

// destKind selects which Destination tag is active.
type destKind int

const (
	destBroadcast destKind = iota
	destChannel
	destUser
)

// Destination describes where a routed payload should go: everyone, one
// channel's members, or all connections of one user. Exactly one tag is
// active per value; use the constructors.
type Destination struct {
	kind      destKind
	channelID int64
	identity  string
}

// Broadcast addresses every currently connected handle.
func Broadcast() Destination {
	return Destination{kind: destBroadcast}
}

// ToChannel addresses the members of a channel.
func ToChannel(channelID int64) Destination {
	return Destination{kind: destChannel, channelID: channelID}
}

// ToUser addresses every open connection of one identity.
func ToUser(identity string) Destination {
	return Destination{kind: destUser, identity: identity}
}

// Router resolves destinations against the presence registry and the
// membership table and dispatches payloads.
type Router struct {
	presence   *Presence
	membership *Membership
}

// NewRouter creates a router over the given tables.
func NewRouter(presence *Presence, membership *Membership) *Router {
	return &Router{presence: presence, membership: membership}
}

// Route delivers the payload to every handle the destination resolves to.
// Delivery is fire-and-forget per handle; a handle that cannot accept the
// payload is dropped without affecting the others. An empty resolution set
// is a no-op.
func (r *Router) Route(payload []byte, dest Destination) {
	if payload == nil {
		return
	}
	for _, c := range r.resolve(dest) {
		c.Send(payload)
	}
}

func (r *Router) resolve(dest Destination) []*Client {
	switch dest.kind {
	case destChannel:
		return r.membership.MembersOf(dest.channelID)
	case destUser:
		return r.presence.Handles(dest.identity)
	default:
		return r.presence.AllHandles()
	}
}
