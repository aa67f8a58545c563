// Package systems implements the mechanisms the simulation is built from:
// spatial queries, the regrowth calendar, and movement math.
package systems

import (
	"github.com/mlange-42/ark/ecs"
)

// Neighbor is a single result of a radius query.
type Neighbor struct {
	Entity ecs.Entity
	X, Y   float64
}

type indexEntry struct {
	entity ecs.Entity
	x, y   float64
}

// Index is a uniform-grid spatial index over every placed entity, patches
// and animals alike. Entries are maintained live: placed once, moved when
// a position changes, removed on despawn. A radius query returns entities
// in grid scan order; callers that need randomness shuffle the result.
type Index struct {
	cellSize      float64
	cols, rows    int
	width, height float64
	cells         [][]indexEntry
	cellOf        map[ecs.Entity]int
}

// NewIndex creates a spatial index covering [0,width] x [0,height].
func NewIndex(width, height, cellSize float64) *Index {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	return &Index{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		width:    width,
		height:   height,
		cells:    make([][]indexEntry, cols*rows),
		cellOf:   make(map[ecs.Entity]int, 1024),
	}
}

// cellIndex returns the cell for a position, clamped to the grid.
func (idx *Index) cellIndex(x, y float64) int {
	col := int(x / idx.cellSize)
	row := int(y / idx.cellSize)
	if col < 0 {
		col = 0
	} else if col >= idx.cols {
		col = idx.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= idx.rows {
		row = idx.rows - 1
	}
	return row*idx.cols + col
}

// Place inserts an entity at a position. The entity must not already be placed.
func (idx *Index) Place(e ecs.Entity, x, y float64) {
	ci := idx.cellIndex(x, y)
	idx.cells[ci] = append(idx.cells[ci], indexEntry{entity: e, x: x, y: y})
	idx.cellOf[e] = ci
}

// Move updates a placed entity's position.
func (idx *Index) Move(e ecs.Entity, x, y float64) {
	old, ok := idx.cellOf[e]
	if !ok {
		idx.Place(e, x, y)
		return
	}
	ci := idx.cellIndex(x, y)
	if ci == old {
		cell := idx.cells[old]
		for i := range cell {
			if cell[i].entity == e {
				cell[i].x = x
				cell[i].y = y
				return
			}
		}
		return
	}
	idx.removeFromCell(e, old)
	idx.cells[ci] = append(idx.cells[ci], indexEntry{entity: e, x: x, y: y})
	idx.cellOf[e] = ci
}

// Remove deletes an entity from the index. Removing an absent entity is a no-op.
func (idx *Index) Remove(e ecs.Entity) {
	ci, ok := idx.cellOf[e]
	if !ok {
		return
	}
	idx.removeFromCell(e, ci)
	delete(idx.cellOf, e)
}

func (idx *Index) removeFromCell(e ecs.Entity, ci int) {
	cell := idx.cells[ci]
	for i := range cell {
		if cell[i].entity == e {
			last := len(cell) - 1
			cell[i] = cell[last]
			idx.cells[ci] = cell[:last]
			return
		}
	}
}

// Position returns the indexed position of an entity.
func (idx *Index) Position(e ecs.Entity) (x, y float64, ok bool) {
	ci, ok := idx.cellOf[e]
	if !ok {
		return 0, 0, false
	}
	for _, entry := range idx.cells[ci] {
		if entry.entity == e {
			return entry.x, entry.y, true
		}
	}
	return 0, 0, false
}

// Neighbors appends every entity within radius of (x, y) to dst and returns
// it, including any entity exactly at the query point. Distance is inclusive:
// an entity exactly at the radius is returned.
func (idx *Index) Neighbors(dst []Neighbor, x, y, radius float64) []Neighbor {
	cellRadius := int(radius/idx.cellSize) + 1
	centerCol := int(x / idx.cellSize)
	centerRow := int(y / idx.cellSize)
	radiusSq := radius * radius

	for row := centerRow - cellRadius; row <= centerRow+cellRadius; row++ {
		if row < 0 || row >= idx.rows {
			continue
		}
		for col := centerCol - cellRadius; col <= centerCol+cellRadius; col++ {
			if col < 0 || col >= idx.cols {
				continue
			}
			for _, entry := range idx.cells[row*idx.cols+col] {
				dx := entry.x - x
				dy := entry.y - y
				if dx*dx+dy*dy <= radiusSq {
					dst = append(dst, Neighbor{Entity: entry.entity, X: entry.x, Y: entry.y})
				}
			}
		}
	}
	return dst
}

// Len returns the number of indexed entities.
func (idx *Index) Len() int {
	return len(idx.cellOf)
}
