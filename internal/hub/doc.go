// Package hub tracks which users are connected, groups their connections
// into channels, and routes chat messages to the right audience.
//
// The package implements:
//   - Presence: maps a user identity to its live connections
//   - Membership: maps a channel id to the connections subscribed to it
//   - Router: resolves a Destination (broadcast, channel, user) to
//     connections and dispatches fire-and-forget
//   - Service: channel lifecycle (create, delete, switch) and message
//     sending on top of the tables and the router
//   - Handler: the WebSocket transport adapter with read/write pumps
//
// Presence and membership are purely in-memory and rebuilt empty on process
// restart; only channel records are durable, behind the ChannelStore
// interface.
package hub
