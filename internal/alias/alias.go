// Package alias resolves the many spellings commodity names take in field
// spreadsheets to catalog identifiers. The index is rebuilt per import run
// from the live catalog plus an explicit manual table, so catalog edits are
// visible immediately and tests can run with a minimal alias set.
package alias

import (
	"strings"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/model"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/normalize"
)

// Index maps normalized name variants to commodity ids. Every key maps to
// exactly one id; manual aliases are applied last and win.
type Index struct {
	byKey map[string]int64
}

// BuildIndex derives lookup variants for every catalog entry, then overlays
// the manual alias table. A manual alias whose canonical name is not in the
// catalog is dropped silently.
func BuildIndex(catalog []model.Commodity, manual map[string]string) *Index {
	ix := &Index{byKey: make(map[string]int64, len(catalog)*4)}

	for _, c := range catalog {
		key := normalize.Key(c.Name)
		if key == "" {
			continue
		}
		for v := range variantsOf(key) {
			ix.byKey[v] = c.ID
		}
	}

	// Manual overrides resolve through whatever the canonical key maps to.
	for rawAlias, canonical := range manual {
		id, ok := ix.byKey[normalize.Key(canonical)]
		if !ok {
			continue
		}
		if k := normalize.Key(rawAlias); k != "" {
			ix.byKey[k] = id
		}
	}

	return ix
}

// Resolve looks up a raw spreadsheet name. A miss is an outcome, not an
// error — the caller decides to skip and record it.
func (ix *Index) Resolve(raw string) (int64, bool) {
	key := normalize.Key(raw)
	if key == "" {
		return 0, false
	}
	id, ok := ix.byKey[key]
	return id, ok
}

// Len reports how many variants are indexed.
func (ix *Index) Len() int {
	return len(ix.byKey)
}

// variantsOf expands one normalized key into its mechanical variants:
// the "ikan " prefix toggled on/off and "cabai"/"cabe" swapped in both
// directions, composed so "ikan cabe ..." style combinations resolve too.
func variantsOf(key string) map[string]struct{} {
	set := map[string]struct{}{key: {}}

	// Fish names appear with and without the "ikan" prefix.
	if strings.HasPrefix(key, "ikan ") {
		set[strings.TrimPrefix(key, "ikan ")] = struct{}{}
	} else {
		set["ikan "+key] = struct{}{}
	}

	for v := range set {
		if w := swapToken(v, "cabai", "cabe"); w != v {
			set[w] = struct{}{}
		}
		if w := swapToken(v, "cabe", "cabai"); w != v {
			set[w] = struct{}{}
		}
	}

	return set
}

// swapToken replaces whole-word occurrences only, so "cabe" never rewrites
// a substring of another token.
func swapToken(s, from, to string) string {
	tokens := strings.Split(s, " ")
	changed := false
	for i, tok := range tokens {
		if tok == from {
			tokens[i] = to
			changed = true
		}
	}
	if !changed {
		return s
	}
	return strings.Join(tokens, " ")
}
