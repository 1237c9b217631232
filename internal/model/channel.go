package model

import "time"

// Channel represents a durable named topic that connections can join.
// The record itself lives in the database; the runtime membership set
// associated with a channel id is owned by the hub.
type Channel struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// NoChannel is the sentinel channel id meaning "not in any channel".
// It never identifies a real channel record or a membership set.
const NoChannel int64 = 0

// CreateChannelRequest represents a request to create a new channel.
type CreateChannelRequest struct {
	Title string `json:"title" binding:"required"`
}

// Validate validates the create channel request.
func (r *CreateChannelRequest) Validate() error {
	if r.Title == "" {
		return ErrTitleRequired
	}
	return nil
}
