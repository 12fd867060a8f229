// Package match resolves local host names to inventory IDs.
package match

import (
	"github.com/rs/zerolog"

	"github.com/Another0Noob/lmi-prune/internal/inventory"
)

// Hit is a name that resolved to an inventory ID.
type Hit struct {
	Name string
	ID   int64
}

// Unmatched is a local name absent from the inventory. Suggestion is the
// closest inventory name when one stands out, empty otherwise.
type Unmatched struct {
	Name       string
	Suggestion string
}

type Result struct {
	IDs       []int64 // deletion set, in name-list order
	Hits      []Hit
	Unmatched []Unmatched
}

// Match looks every name up in inv. Names are compared verbatim; duplicates
// produce duplicate IDs. Suggestions never add IDs.
func Match(names []string, inv *inventory.Inventory) Result {
	res := Result{
		IDs:  make([]int64, 0, len(names)),
		Hits: make([]Hit, 0, len(names)),
	}

	var sg *suggester
	for _, name := range names {
		if id, ok := inv.Lookup(name); ok {
			res.IDs = append(res.IDs, id)
			res.Hits = append(res.Hits, Hit{Name: name, ID: id})
			continue
		}
		if sg == nil {
			sg = newSuggester(inv.Names())
		}
		res.Unmatched = append(res.Unmatched, Unmatched{
			Name:       name,
			Suggestion: sg.suggest(name),
		})
	}
	return res
}

// LogUnmatched emits one warning per unmatched name.
func LogUnmatched(logger zerolog.Logger, unmatched []Unmatched) {
	for _, u := range unmatched {
		ev := logger.Warn().Str("name", u.Name)
		if u.Suggestion != "" {
			ev = ev.Str("did_you_mean", u.Suggestion)
		}
		ev.Msg("host not found in inventory")
	}
}
