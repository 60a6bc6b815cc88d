package songs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSuggestion = errors.New("invalid suggestion")
	ErrFamilyRequired    = fmt.Errorf("%w: family is required", ErrInvalidSuggestion)
	ErrSongRequired      = fmt.Errorf("%w: song is required", ErrInvalidSuggestion)

	ErrStorage = errors.New("song storage failed")
)
