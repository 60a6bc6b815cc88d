package songs

import "context"

type Repository interface {
	// Insert persists suggestion and fills in its ID and CreatedAt.
	Insert(ctx context.Context, suggestion *Suggestion) error
	// ListNewestFirst returns every row ordered by created_at then id, both descending.
	ListNewestFirst(ctx context.Context) ([]Suggestion, error)
}
