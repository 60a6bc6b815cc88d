package guests

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

//go:embed guests.json
var defaultGuestsJSON []byte

type guestEntry struct {
	Family string `json:"family"`
	Guests int    `json:"guests"`
}

// DefaultGuests returns the guest list compiled into the binary.
func DefaultGuests() ([]Guest, error) {
	return ParseJSON(bytes.NewReader(defaultGuestsJSON))
}

func LoadFile(path string) ([]Guest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open guests file: %w", err)
	}
	defer file.Close()

	return ParseJSON(file)
}

// ParseJSON reads a document of the form {"CODE": {"family": "...", "guests": N}}.
func ParseJSON(r io.Reader) ([]Guest, error) {
	var document map[string]guestEntry
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&document); err != nil {
		return nil, fmt.Errorf("%w: decode guests: %v", ErrInvalidDirectory, err)
	}

	result := make([]Guest, 0, len(document))
	for code, entry := range document {
		result = append(result, Guest{
			Code:       code,
			FamilyName: entry.Family,
			PartySize:  entry.Guests,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Code < result[j].Code
	})
	return result, nil
}
