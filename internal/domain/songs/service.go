package songs

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddSuggestion validates and appends one suggestion. The family name is
// stored as supplied by the client; it is not checked against the guest
// directory.
func (s *Service) AddSuggestion(ctx context.Context, family, song string, artist *string) (*Suggestion, error) {
	family = strings.TrimSpace(family)
	if family == "" {
		return nil, ErrFamilyRequired
	}
	song = strings.TrimSpace(song)
	if song == "" {
		return nil, ErrSongRequired
	}

	suggestion := Suggestion{
		Family: family,
		Song:   song,
		Artist: normalizeArtist(artist),
	}
	if err := s.repo.Insert(ctx, &suggestion); err != nil {
		return nil, fmt.Errorf("%w: insert: %w", ErrStorage, err)
	}

	return &suggestion, nil
}

func (s *Service) ListSuggestions(ctx context.Context) ([]Suggestion, error) {
	items, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", ErrStorage, err)
	}
	if items == nil {
		items = []Suggestion{}
	}
	return items, nil
}

func normalizeArtist(artist *string) *string {
	if artist == nil {
		return nil
	}
	value := strings.TrimSpace(*artist)
	if value == "" {
		return nil
	}
	return &value
}
