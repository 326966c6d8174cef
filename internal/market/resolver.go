// Package market resolves the target market of an import run against the
// market catalog.
package market

import (
	"errors"
	"strings"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/model"
)

var (
	// ErrInvalidInput means the caller supplied neither an id nor a name.
	ErrInvalidInput = errors.New("market: either an id or a name is required")
	// ErrNotFound means the id or name did not match any catalog entry.
	ErrNotFound = errors.New("market: not found")
)

// Resolve picks a market id from an explicit id or a name. Exactly one of the
// two must be supplied; ids are matched directly, names case-insensitively
// after trimming. Missing both is a caller error, a miss is ErrNotFound.
func Resolve(markets []model.Market, id int64, name string) (int64, error) {
	name = strings.TrimSpace(name)

	if id == 0 && name == "" {
		return 0, ErrInvalidInput
	}

	if id != 0 {
		for _, m := range markets {
			if m.ID == id {
				return m.ID, nil
			}
		}
		return 0, ErrNotFound
	}

	for _, m := range markets {
		if strings.EqualFold(strings.TrimSpace(m.Name), name) {
			return m.ID, nil
		}
	}
	return 0, ErrNotFound
}
