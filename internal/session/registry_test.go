package session

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samdwyer/mun/internal/model"
)

func TestRegistryRebuild(t *testing.T) {
	r := NewRegistry()
	r.Rebuild(model.Room{Entities: []string{"a", "me", "b"}}, "me")

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []int{1, 2}, r.Keys())
	guid, ok := r.Lookup(2)
	assert.True(t, ok)
	assert.Equal(t, "b", guid)

	_, ok = r.Lookup(0)
	assert.False(t, ok)
	_, ok = r.Lookup(3)
	assert.False(t, ok)
}

func TestRegistryRebuildDropsOldKeys(t *testing.T) {
	r := NewRegistry()
	r.Rebuild(model.Room{Entities: []string{"a", "b", "c"}}, "")
	r.Rebuild(model.Room{Entities: []string{"z"}}, "")

	assert.Equal(t, []int{1}, r.Keys())
	_, ok := r.Lookup(2)
	assert.False(t, ok)
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry()
	r.Rebuild(model.Room{Entities: []string{"a"}}, "")
	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Keys())
}

// Keys are contiguous from 1, self never appears, and order is preserved.
func TestRegistryProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		n := rng.Intn(8)
		entities := make([]string, n)
		for j := range entities {
			entities[j] = fmt.Sprintf("g%d", rng.Intn(4))
		}
		self := fmt.Sprintf("g%d", rng.Intn(4))

		r := NewRegistry()
		r.Rebuild(model.Room{Entities: entities}, self)

		var want []string
		for _, e := range entities {
			if e != self {
				want = append(want, e)
			}
		}
		assert.Equal(t, len(want), r.Len())
		for k, key := range r.Keys() {
			assert.Equal(t, k+1, key)
			guid, ok := r.Lookup(key)
			assert.True(t, ok)
			assert.NotEqual(t, self, guid)
			assert.Equal(t, want[k], guid)
		}
	}
}
