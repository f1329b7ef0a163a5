package session

import "github.com/samdwyer/mun/internal/model"

// Registry numbers the other occupants of the current room so a target can be
// picked without typing a guid. Keys are 1..Len() with no gaps.
type Registry struct {
	guids []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Rebuild discards every key and numbers room.Entities in order, skipping self.
func (r *Registry) Rebuild(room model.Room, self string) {
	guids := make([]string, 0, len(room.Entities))
	for _, guid := range room.Entities {
		if guid == self {
			continue
		}
		guids = append(guids, guid)
	}
	r.guids = guids
}

// Reset empties the registry.
func (r *Registry) Reset() {
	r.guids = nil
}

// Lookup returns the guid for key.
func (r *Registry) Lookup(key int) (string, bool) {
	if key < 1 || key > len(r.guids) {
		return "", false
	}
	return r.guids[key-1], true
}

// Keys returns every key in ascending order.
func (r *Registry) Keys() []int {
	keys := make([]int, len(r.guids))
	for i := range r.guids {
		keys[i] = i + 1
	}
	return keys
}

// Len returns the number of numbered occupants.
func (r *Registry) Len() int {
	return len(r.guids)
}
