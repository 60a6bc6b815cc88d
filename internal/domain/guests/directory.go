package guests

import (
	"crypto/subtle"
	"fmt"
	"sort"
	"strings"
)

// Directory maps access codes to guests. It is built once at startup and is
// read-only afterwards, so it is safe for concurrent use without locking.
//
// The admin secret lives beside the guest map but is never looked up in it:
// guest codes are normalized, the admin code is compared verbatim.
type Directory struct {
	guests    map[string]Guest
	adminCode string
}

func NewDirectory(entries []Guest, adminCode string) (*Directory, error) {
	if adminCode == "" {
		return nil, fmt.Errorf("%w: admin code is required", ErrInvalidDirectory)
	}

	guests := make(map[string]Guest, len(entries))
	for _, entry := range entries {
		code := normalizeCode(entry.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: empty code for %q", ErrInvalidDirectory, entry.FamilyName)
		}
		if _, exists := guests[code]; exists {
			return nil, fmt.Errorf("%w: duplicate code %s", ErrInvalidDirectory, code)
		}

		familyName := strings.TrimSpace(entry.FamilyName)
		if familyName == "" {
			return nil, fmt.Errorf("%w: code %s has no family name", ErrInvalidDirectory, code)
		}
		if entry.PartySize <= 0 {
			return nil, fmt.Errorf("%w: code %s has party size %d", ErrInvalidDirectory, code, entry.PartySize)
		}

		guests[code] = Guest{
			Code:       code,
			FamilyName: familyName,
			PartySize:  entry.PartySize,
		}
	}

	return &Directory{guests: guests, adminCode: adminCode}, nil
}

// ResolveGuestCode trims and upper-cases input before an exact lookup.
func (d *Directory) ResolveGuestCode(input string) (Guest, error) {
	guest, ok := d.guests[normalizeCode(input)]
	if !ok {
		return Guest{}, ErrGuestCodeNotFound
	}
	return guest, nil
}

// VerifyAdminCode reports whether input is exactly the admin secret.
// Case matters and surrounding whitespace is not stripped.
func (d *Directory) VerifyAdminCode(input string) bool {
	return subtle.ConstantTimeCompare([]byte(input), []byte(d.adminCode)) == 1
}

func (d *Directory) Len() int {
	return len(d.guests)
}

// Guests returns every entry ordered by code.
func (d *Directory) Guests() []Guest {
	result := make([]Guest, 0, len(d.guests))
	for _, guest := range d.guests {
		result = append(result, guest)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Code < result[j].Code
	})
	return result
}

func normalizeCode(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
