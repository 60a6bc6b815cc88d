package inmemory

import (
	"context"
	"sync"
	"time"

	songsdomain "invite-app-go/internal/domain/songs"
)

// SongsRepository keeps suggestions in process memory. It backs the
// "memory" driver used for local development and handler tests; nothing
// survives a restart.
type SongsRepository struct {
	mu     sync.RWMutex
	items  []songsdomain.Suggestion
	lastID int64
	now    func() time.Time
}

func NewSongsRepository() *SongsRepository {
	return &SongsRepository{
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *SongsRepository) Insert(ctx context.Context, suggestion *songsdomain.Suggestion) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.lastID++
	createdAt := r.now()
	if n := len(r.items); n > 0 && createdAt.Before(r.items[n-1].CreatedAt) {
		createdAt = r.items[n-1].CreatedAt
	}
	suggestion.ID = r.lastID
	suggestion.CreatedAt = createdAt
	stored := *suggestion
	if suggestion.Artist != nil {
		artist := *suggestion.Artist
		stored.Artist = &artist
	}
	r.items = append(r.items, stored)
	r.mu.Unlock()

	return nil
}

// ListNewestFirst walks the slice backwards: insertion order already matches
// created_at, and a later id wins a timestamp tie.
func (r *SongsRepository) ListNewestFirst(ctx context.Context) ([]songsdomain.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]songsdomain.Suggestion, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		item := r.items[i]
		if item.Artist != nil {
			artist := *item.Artist
			item.Artist = &artist
		}
		result = append(result, item)
	}
	return result, nil
}
