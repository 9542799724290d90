package alloc

import "github.com/icecake0141/patchwork-beta/internal/domain"

// slotCursor is the per-rack ledger of the next free (u, slot) position. It
// carries no category tag: the only thing that enforces slot-category
// priority is the order in which allocators call reserve() against it,
// which is exactly how a new category seamlessly fills the tail of a U
// left partially occupied by the previous one.
type slotCursor struct {
	index int
}

// reserve returns the next (u, slot) pair and advances the cursor. U and
// slot are both 1-based; slots fill 1..SlotsPerU within a U before moving
// to the next U.
func (c *slotCursor) reserve() (u, slot int) {
	u = c.index/domain.SlotsPerU + 1
	slot = c.index%domain.SlotsPerU + 1
	c.index++
	return u, slot
}

// slotReserver tracks one slotCursor per rack for the lifetime of a single
// allocation call. It is strictly call-local: never shared across
// allocate() invocations, never a package-level singleton.
type slotReserver struct {
	cursors map[string]*slotCursor
}

func newSlotReserver(racks []domain.Rack) *slotReserver {
	r := &slotReserver{cursors: make(map[string]*slotCursor, len(racks))}
	for _, rack := range racks {
		r.cursors[rack.ID] = &slotCursor{}
	}
	return r
}

func (r *slotReserver) reserve(rackID string) (u, slot int) {
	return r.cursors[rackID].reserve()
}
