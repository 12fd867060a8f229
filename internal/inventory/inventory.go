// Package inventory holds the name to host ID mapping fetched from the
// remote account.
package inventory

import "github.com/Another0Noob/lmi-prune/internal/logmeinapi"

// Entry is one row of the inventory.
type Entry struct {
	Name string
	ID   int64
}

// Inventory maps host descriptions to IDs. Entries keep the position of
// their first occurrence; a repeated name takes the ID of its last one.
type Inventory struct {
	index   map[string]int // name -> position in entries
	entries []Entry
}

// New returns an empty inventory.
func New() *Inventory {
	return &Inventory{index: make(map[string]int)}
}

// FromHosts builds an inventory in response order.
func FromHosts(hosts []logmeinapi.Host) *Inventory {
	inv := &Inventory{
		index:   make(map[string]int, len(hosts)),
		entries: make([]Entry, 0, len(hosts)),
	}
	for _, h := range hosts {
		inv.Set(h.Description, h.ID)
	}
	return inv
}

// Set records name -> id.
func (inv *Inventory) Set(name string, id int64) {
	if i, ok := inv.index[name]; ok {
		inv.entries[i].ID = id
		return
	}
	inv.index[name] = len(inv.entries)
	inv.entries = append(inv.entries, Entry{Name: name, ID: id})
}

// Lookup returns the ID for name. ok is false when the name is absent; an
// ID of 0 is a valid hit.
func (inv *Inventory) Lookup(name string) (id int64, ok bool) {
	if inv == nil {
		return 0, false
	}
	i, ok := inv.index[name]
	if !ok {
		return 0, false
	}
	return inv.entries[i].ID, true
}

// Len is the number of distinct names.
func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.entries)
}

// Entries returns a copy of the rows in insertion order.
func (inv *Inventory) Entries() []Entry {
	if inv == nil {
		return nil
	}
	out := make([]Entry, len(inv.entries))
	copy(out, inv.entries)
	return out
}

// Names returns the distinct names in insertion order.
func (inv *Inventory) Names() []string {
	if inv == nil {
		return nil
	}
	out := make([]string, len(inv.entries))
	for i, e := range inv.entries {
		out[i] = e.Name
	}
	return out
}
