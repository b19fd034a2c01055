package simcell

import "math"

// SpatialIndex is a bucket-hash grid over the simulation plane. It keeps two
// views of the same cell set: a dense slice for O(1) uniform random sampling,
// and per-bucket slices for cheap local-neighborhood iteration. Both views
// support O(1) removal by swapping the removed element with the last one in
// its slice before truncating (spec §4.1).
type SpatialIndex struct {
	bucketSize float64

	dense      []*Cell
	denseIndex map[*Cell]int

	buckets   map[GridPoint][]*Cell
	bucketPos map[*Cell]int
	cellGrid  map[*Cell]GridPoint
}

// NewSpatialIndex builds an empty index with the given bucket size. Per spec
// §9, callers derive bucketSize as (1 - 1e-9) * the largest cell diameter in
// play, so that any two cells closer than one cell-diameter apart always
// share or neighbor a bucket.
func NewSpatialIndex(bucketSize float64) *SpatialIndex {
	return &SpatialIndex{
		bucketSize: bucketSize,
		denseIndex: make(map[*Cell]int),
		buckets:    make(map[GridPoint][]*Cell),
		bucketPos:  make(map[*Cell]int),
		cellGrid:   make(map[*Cell]GridPoint),
	}
}

// Size returns the number of cells currently indexed.
func (idx *SpatialIndex) Size() int { return len(idx.dense) }

// Insert adds c to the index at its current Coordinates.
func (idx *SpatialIndex) Insert(c *Cell) {
	idx.dense = append(idx.dense, c)
	idx.denseIndex[c] = len(idx.dense) - 1

	gp := Hash(c.Coordinates, idx.bucketSize)
	idx.insertIntoBucket(c, gp)
}

// Remove deletes c from the index. c must currently be indexed.
func (idx *SpatialIndex) Remove(c *Cell) {
	i, ok := idx.denseIndex[c]
	if !ok {
		panic(invariantErrorf("SpatialIndex.Remove: cell is not indexed"))
	}
	last := len(idx.dense) - 1
	idx.dense[i] = idx.dense[last]
	idx.denseIndex[idx.dense[i]] = i
	idx.dense = idx.dense[:last]
	delete(idx.denseIndex, c)

	idx.removeFromBucket(c, idx.cellGrid[c])
}

// Update repositions c within the bucket structure after its Coordinates
// have changed. It is a no-op if c's new position still hashes to the same
// bucket. Must be called after every committed move, or local queries will
// silently miss the cell.
func (idx *SpatialIndex) Update(c *Cell) {
	gp := Hash(c.Coordinates, idx.bucketSize)
	old, ok := idx.cellGrid[c]
	if ok && old == gp {
		return
	}
	if ok {
		idx.removeFromBucket(c, old)
	}
	idx.insertIntoBucket(c, gp)
}

func (idx *SpatialIndex) insertIntoBucket(c *Cell, gp GridPoint) {
	bucket := idx.buckets[gp]
	idx.buckets[gp] = append(bucket, c)
	idx.bucketPos[c] = len(idx.buckets[gp]) - 1
	idx.cellGrid[c] = gp
}

func (idx *SpatialIndex) removeFromBucket(c *Cell, gp GridPoint) {
	bucket := idx.buckets[gp]
	j := idx.bucketPos[c]
	last := len(bucket) - 1
	bucket[j] = bucket[last]
	idx.bucketPos[bucket[j]] = j
	bucket = bucket[:last]
	if len(bucket) == 0 {
		delete(idx.buckets, gp)
	} else {
		idx.buckets[gp] = bucket
	}
	delete(idx.bucketPos, c)
	delete(idx.cellGrid, c)
}

// RandomValue returns a uniformly random cell from the index. ok is false
// when the index is empty.
func (idx *SpatialIndex) RandomValue(rng RandomSource) (c *Cell, ok bool) {
	if len(idx.dense) == 0 {
		return nil, false
	}
	return idx.dense[rng.Intn(len(idx.dense))], true
}

// All returns every indexed cell, in unspecified order. The returned slice is
// a copy; mutating it does not affect the index.
func (idx *SpatialIndex) All() []*Cell {
	out := make([]*Cell, len(idx.dense))
	copy(out, idx.dense)
	return out
}

// LocalIterator walks the cells in the (2*radius+1)x(2*radius+1) block of
// buckets centered on a query point, column-major (all of column dx before
// moving to dx+1, and within a column from -radius to +radius). It is a
// plain comparable value: copying it copies the cursor, and an exhausted
// iterator compares equal to End().
type LocalIterator struct {
	idx    *SpatialIndex
	center GridPoint
	radius int
	dx, dy int
	pos    int
}

// LocalIterate returns an iterator positioned at the first cell (if any)
// whose bucket intersects the axis-aligned square of bucket half-width
// ceil(radius / (bucketSize*sqrt(2))) + 1 around p (spec §4.1) — wide enough
// that no cell within real-world distance radius of p can be missed.
func (idx *SpatialIndex) LocalIterate(p Point, radius float64) LocalIterator {
	bucketRadius := int(math.Ceil(radius/(idx.bucketSize*math.Sqrt2))) + 1
	start := LocalIterator{idx: idx, center: Hash(p, idx.bucketSize), radius: bucketRadius, dx: -bucketRadius, dy: -bucketRadius, pos: -1}
	return start.Next()
}

// End returns the sentinel value that a fully-advanced copy of it compares
// equal to.
func (it LocalIterator) End() LocalIterator {
	return LocalIterator{idx: it.idx, center: it.center, radius: it.radius, dx: it.radius + 1, dy: -it.radius, pos: -1}
}

// Cell returns the cell the iterator currently points to. Calling it on an
// exhausted iterator panics.
func (it LocalIterator) Cell() *Cell {
	return it.idx.buckets[GridPoint{X: it.center.X + it.dx, Y: it.center.Y + it.dy}][it.pos]
}

// Next returns the iterator advanced by one cell (or the End() sentinel once
// exhausted). It does not mutate it.
func (it LocalIterator) Next() LocalIterator {
	dx, dy, pos := it.dx, it.dy, it.pos
	for dx <= it.radius {
		bucket := it.idx.buckets[GridPoint{X: it.center.X + dx, Y: it.center.Y + dy}]
		pos++
		if pos < len(bucket) {
			return LocalIterator{idx: it.idx, center: it.center, radius: it.radius, dx: dx, dy: dy, pos: pos}
		}
		pos = -1
		dy++
		if dy > it.radius {
			dy = -it.radius
			dx++
		}
	}
	return it.End()
}

// ForEachLocal is the usual consumer of LocalIterator: visit every cell
// within real-world distance radius of p.
func (idx *SpatialIndex) ForEachLocal(p Point, radius float64, fn func(*Cell)) {
	end := idx.LocalIterate(p, radius).End()
	for it := idx.LocalIterate(p, radius); it != end; it = it.Next() {
		fn(it.Cell())
	}
}
