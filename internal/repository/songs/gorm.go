package songs

import (
	"context"

	"gorm.io/gorm"

	songsdomain "invite-app-go/internal/domain/songs"
)

// GormRepository stores suggestions in any gorm dialect that has a songs table.
type GormRepository struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Insert(ctx context.Context, suggestion *songsdomain.Suggestion) error {
	return r.db.WithContext(ctx).Create(suggestion).Error
}

func (r *GormRepository) ListNewestFirst(ctx context.Context) ([]songsdomain.Suggestion, error) {
	var items []songsdomain.Suggestion
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
