package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chathub/backend/internal/model"
)

// ChannelRepository provides data access for channels.
type ChannelRepository struct {
	db *sql.DB
}

// NewChannelRepository creates a new ChannelRepository.
func NewChannelRepository(db *sql.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// Insert creates a new channel with the given title and returns the stored record.
func (r *ChannelRepository) Insert(ctx context.Context, title string) (*model.Channel, error) {
	query := `INSERT INTO channels (title) VALUES (?)`

	result, err := r.db.ExecContext(ctx, query, title)
	if err != nil {
		return nil, fmt.Errorf("failed to insert channel: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel id: %w", err)
	}

	return r.Find(ctx, id)
}

// Find retrieves a channel by its id.
func (r *ChannelRepository) Find(ctx context.Context, id int64) (*model.Channel, error) {
	query := `SELECT id, title, created_at FROM channels WHERE id = ?`

	channel := &model.Channel{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&channel.ID,
		&channel.Title,
		&channel.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, model.ErrChannelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	return channel, nil
}

// List retrieves all channels ordered by creation time.
func (r *ChannelRepository) List(ctx context.Context) ([]*model.Channel, error) {
	query := `SELECT id, title, created_at FROM channels ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var channels []*model.Channel
	for rows.Next() {
		channel := &model.Channel{}
		if err := rows.Scan(&channel.ID, &channel.Title, &channel.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channels: %w", err)
	}

	return channels, nil
}

// Delete removes a channel from the database.
func (r *ChannelRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM channels WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return model.ErrChannelNotFound
	}

	return nil
}

// Exists checks if a channel exists.
func (r *ChannelRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT 1 FROM channels WHERE id = ? LIMIT 1`

	var exists int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check channel existence: %w", err)
	}

	return true, nil
}
