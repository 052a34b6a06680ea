package world

// World owns every Body in a game: avatar circles, trail segments, and
// bonus pickups. It partitions bodies into Islands (maximal clusters of
// grid-adjacent bodies) so a collision query against one body only ever
// examines its own island instead of the whole board.
type World struct {
	grid   *Grid
	bodies map[string]Body
	// islandOf maps a body id to its island's representative id, valid
	// only between calls to Repartition (called once per tick).
	islandOf map[string]string
}

// New creates a World with a grid cell size. cellSize should be at least
// twice the largest body radius the world will hold, per the spec.
func New(cellSize float64) *World {
	return &World{
		grid:     newGrid(cellSize),
		bodies:   make(map[string]Body),
		islandOf: make(map[string]string),
	}
}

// Insert adds or replaces a body. Re-inserting an id first removes its old
// grid placement, so dynamic bodies (the avatar's own circle) can be
// re-indexed every tick.
func (w *World) Insert(b Body) {
	if old, ok := w.bodies[b.ID]; ok {
		w.grid.remove(b.ID, old)
	}
	w.bodies[b.ID] = b
	w.grid.insert(b.ID, b)
}

// Remove deletes a body permanently (trail expiry, bonus pickup/expiry,
// avatar death).
func (w *World) Remove(id string) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	w.grid.remove(id, b)
	delete(w.bodies, id)
	delete(w.islandOf, id)
}

// Get returns a body by id.
func (w *World) Get(id string) (Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// Len returns the number of bodies currently held.
func (w *World) Len() int {
	return len(w.bodies)
}

// Repartition rebuilds the Island clustering from the current grid state.
// Call once per tick before running collision queries, after all dynamic
// bodies for this tick have been Inserted.
func (w *World) Repartition() {
	ids := make([]string, 0, len(w.bodies))
	index := make(map[string]int, len(w.bodies))
	for id := range w.bodies {
		index[id] = len(ids)
		ids = append(ids, id)
	}

	uf := newUnionFind(len(ids))
	for _, id := range ids {
		b := w.bodies[id]
		for _, neighborID := range w.grid.neighbors(b) {
			if neighborID == id {
				continue
			}
			uf.union(index[id], index[neighborID])
		}
	}

	w.islandOf = make(map[string]string, len(ids))
	for _, id := range ids {
		root := uf.find(index[id])
		w.islandOf[id] = ids[root]
	}
}

// Retrieve returns every body sharing a grid cell with b (candidate set for
// a full overlap check), excluding b itself; once Repartition has placed b
// in an Island, candidates outside that Island are dropped. b need not
// itself be in the World (used for probing a not-yet-inserted trial
// position).
func (w *World) Retrieve(b Body) []Body {
	var islandRoot string
	if root, ok := w.islandOf[b.ID]; ok {
		islandRoot = root
	}

	candidateIDs := w.grid.neighbors(b)
	out := make([]Body, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if id == b.ID {
			continue
		}
		// Prefer island-membership filtering when available: it is a
		// superset-safe refinement over the shared-cell grid query once
		// Repartition has run for this tick.
		if islandRoot != "" {
			if root, ok := w.islandOf[id]; !ok || root != islandRoot {
				continue
			}
		}
		out = append(out, w.bodies[id])
	}
	return out
}

// GetBody returns the first body that actually overlaps b (a full circle
// test, not just a shared grid cell), or ok=false if none does.
func (w *World) GetBody(b Body, exclude map[string]struct{}) (Body, bool) {
	for _, candidate := range w.Retrieve(b) {
		if _, skip := exclude[candidate.ID]; skip {
			continue
		}
		if b.Overlaps(candidate) {
			return candidate, true
		}
	}
	return Body{}, false
}

// GetBodies returns every body that actually overlaps b.
func (w *World) GetBodies(b Body, exclude map[string]struct{}) []Body {
	var out []Body
	for _, candidate := range w.Retrieve(b) {
		if _, skip := exclude[candidate.ID]; skip {
			continue
		}
		if b.Overlaps(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}
