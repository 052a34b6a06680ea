package world

import "math"

// cellKey addresses one bucket of the spatial grid.
type cellKey struct {
	x, y int64
}

// Grid buckets bodies by cell so overlap queries only examine nearby
// bodies, generalizing the teacher's CollideCells 3x3-neighborhood scan
// from a fixed board grid to an arbitrary floating-point board.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]string
}

func newGrid(cellSize float64) *Grid {
	return &Grid{cellSize: cellSize, cells: make(map[cellKey][]string)}
}

func (g *Grid) keyFor(x, y float64) cellKey {
	return cellKey{x: int64(math.Floor(x / g.cellSize)), y: int64(math.Floor(y / g.cellSize))}
}

func (g *Grid) cellsFor(b Body) []cellKey {
	minX, minY, maxX, maxY := b.BBox()
	loKey := g.keyFor(minX, minY)
	hiKey := g.keyFor(maxX, maxY)
	keys := make([]cellKey, 0, 4)
	for x := loKey.x; x <= hiKey.x; x++ {
		for y := loKey.y; y <= hiKey.y; y++ {
			keys = append(keys, cellKey{x: x, y: y})
		}
	}
	return keys
}

func (g *Grid) insert(id string, b Body) {
	for _, k := range g.cellsFor(b) {
		g.cells[k] = append(g.cells[k], id)
	}
}

func (g *Grid) remove(id string, b Body) {
	for _, k := range g.cellsFor(b) {
		bucket := g.cells[k]
		for i, existing := range bucket {
			if existing == id {
				g.cells[k] = append(bucket[:i], bucket[i+1:]...)
				break
			}
		}
		if len(g.cells[k]) == 0 {
			delete(g.cells, k)
		}
	}
}

// neighbors returns every id sharing a cell with b, deduplicated. Only the
// cells b's bounding box touches are scanned, not a 3x3 neighborhood around
// them: two overlapping circles always share at least one touched cell, so
// the teacher's explicit -1..1 loop is not needed.
func (g *Grid) neighbors(b Body) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, k := range g.cellsFor(b) {
		for _, id := range g.cells[k] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
