package bvh

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Bounded is anything the builder can place in the hierarchy.
type Bounded interface {
	Bounds() AABB
}

// candidate is a record together with the builder's verdict on it.
type candidate struct {
	rec    BuildRecord
	cut    Cut
	leaf   bool
	forced bool
}

// task is a record waiting for its node, and the parent slot to patch.
type task struct {
	c      candidate
	parent int
	slot   int
}

type builder struct {
	cfg   Config
	strat splitter
	prof  *Profiler

	root     ChildRef
	nodes    []Node
	ordering []int
	stats    BuildStats

	pending []task
}

// BuildFrom builds a tree over the bounds of objs. Primitive ids are slice
// indices.
func BuildFrom[T Bounded](objs []T, cfg Config) (*Tree, error) {
	bounds := make([]AABB, len(objs))
	for i, o := range objs {
		bounds[i] = o.Bounds()
	}
	return Build(bounds, cfg)
}

// Build constructs a hierarchy over bounds. The id of a primitive is its index
// in bounds. The returned tree is immutable and safe for concurrent queries.
func Build(bounds []AABB, cfg Config) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(bounds) == 0 {
		return nil, ErrNoPrimitives
	}

	start := time.Now()
	prims := make([]BuildPrimitive, len(bounds))
	for i, b := range bounds {
		if !b.IsFinite() || b.IsEmpty() {
			return nil, fmt.Errorf("primitive %d %v: %w", i, b, ErrInvalidBounds)
		}
		prims[i] = NewBuildPrimitive(i, b)
	}
	rootRec := recordOf(prims, 0, len(prims))
	if e := rootRec.GeometryBounds.Extent(); e[0] == 0 && e[1] == 0 && e[2] == 0 {
		return nil, fmt.Errorf("%d primitives at %v: %w", len(prims), rootRec.GeometryBounds.Min, ErrDegenerateBounds)
	}

	b := &builder{
		cfg:      cfg,
		ordering: make([]int, 0, len(prims)),
		nodes:    make([]Node, 0, len(prims)/cfg.MaxLeafSize+1),
	}
	if cfg.Profile {
		b.prof = NewProfiler()
	}
	switch cfg.Strategy {
	case StrategySweep:
		b.prof.BeginScope("presort")
		b.strat = newSweeper(prims)
		b.prof.EndScope("presort")
	default:
		b.strat = newBinner(prims, cfg.BinCount)
	}

	b.run(rootRec)

	b.stats.ID = uuid.New()
	b.stats.Primitives = len(prims)
	b.stats.Duration = time.Since(start)

	t := &Tree{
		cfg:        cfg,
		root:       b.root,
		bounds:     rootRec.GeometryBounds,
		nodes:      b.nodes,
		ordering:   b.ordering,
		primBounds: slices.Clone(bounds),
		profile:    b.prof,
	}
	b.stats.Nodes = len(t.nodes)
	b.stats.SAHCost = t.sahCost()
	t.stats = b.stats
	return t, nil
}

func (b *builder) run(rootRec BuildRecord) {
	b.pending = append(b.pending, task{c: b.evaluate(rootRec), parent: -1})
	for len(b.pending) > 0 {
		t := b.pending[len(b.pending)-1]
		b.pending = b.pending[:len(b.pending)-1]
		b.process(t)
	}
}

func (b *builder) find(rec BuildRecord) Cut {
	b.prof.BeginScope("find")
	cut := b.strat.find(rec)
	b.prof.EndScope("find")
	return cut
}

// evaluate applies the leaf rule to rec.
func (b *builder) evaluate(rec BuildRecord) candidate {
	c := candidate{rec: rec, cut: invalidCut()}
	size := rec.Size()
	if size <= b.cfg.MaxLeafSize {
		c.leaf = true
		return c
	}
	if rec.depth >= b.cfg.MaxDepth || !rec.splittable() {
		c.leaf, c.forced = true, true
		return c
	}

	c.cut = b.find(rec)
	area := rec.GeometryBounds.HalfArea()
	splitArea := area * float32(size)
	if c.cut.Valid() {
		splitArea = c.cut.Cost
	}
	leafCost := b.cfg.IntersectCost * area * float32(size) * b.cfg.LeafBlockFactor
	splitCost := b.cfg.TraversalCost*area + b.cfg.IntersectCost*splitArea
	if size <= b.cfg.MaxBlockSize && leafCost < splitCost {
		c.leaf = true
	}
	return c
}

// split partitions c into two evaluated candidates at the given depth. ok is
// false when the partition put everything on one side.
func (b *builder) split(c candidate, depth int) (l, r candidate, ok bool) {
	b.prof.BeginScope("partition")
	left, right := b.strat.partition(c.cut, c.rec)
	b.prof.EndScope("partition")
	if left.Size() == 0 || right.Size() == 0 {
		return l, r, false
	}
	left.depth, right.depth = depth, depth
	return b.evaluate(left), b.evaluate(right), true
}

// widen splits c in two and keeps re-splitting the largest splittable child
// until the branching factor is reached.
func (b *builder) widen(c candidate) ([]candidate, bool) {
	l, r, ok := b.split(c, c.rec.depth+1)
	if !ok {
		return nil, false
	}
	children := make([]candidate, 0, b.cfg.BranchingFactor)
	children = append(children, l, r)

	for len(children) < b.cfg.BranchingFactor {
		best := -1
		var bestArea float32
		for i := range children {
			if children[i].leaf {
				continue
			}
			area := children[i].rec.GeometryBounds.HalfArea()
			if best < 0 || area > bestArea {
				best, bestArea = i, area
			}
		}
		if best < 0 {
			break
		}

		ch := children[best]
		l, r, ok := b.split(ch, ch.rec.depth)
		if !ok {
			children[best].leaf, children[best].forced = true, true
			continue
		}
		children[best] = l
		children = slices.Insert(children, best+1, r)
	}
	return children, true
}

func (b *builder) process(t task) {
	c := t.c
	if !c.leaf {
		children, ok := b.widen(c)
		if ok {
			b.emitNode(t, children)
			return
		}
		c.leaf, c.forced = true, true
	}
	b.link(t.parent, t.slot, b.emitLeaf(c))
}

func (b *builder) emitNode(t task, children []candidate) {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, newNode())
	b.link(t.parent, t.slot, InteriorRef(idx))

	first := len(b.pending)
	for slot, ch := range children {
		ref := ChildRef{}
		if ch.leaf {
			ref = b.emitLeaf(ch)
		} else {
			b.pending = append(b.pending, task{c: ch, parent: idx, slot: slot})
		}
		b.nodes[idx].setChild(slot, ch.rec.GeometryBounds, ref)
	}
	// Pop in slot order.
	slices.Reverse(b.pending[first:])
}

func (b *builder) emitLeaf(c candidate) ChildRef {
	b.prof.BeginScope("emit")
	offset := len(b.ordering)
	b.ordering = b.strat.appendIDs(b.ordering, c.rec)
	b.prof.EndScope("emit")

	b.stats.Leaves++
	if c.forced && c.rec.Size() > b.cfg.MaxLeafSize {
		b.stats.ForcedLeaves++
	}
	if c.rec.depth > b.stats.MaxDepth {
		b.stats.MaxDepth = c.rec.depth
	}
	return LeafRef(offset, c.rec.Size())
}

func (b *builder) link(parent, slot int, ref ChildRef) {
	if parent < 0 {
		b.root = ref
		return
	}
	b.nodes[parent].Children[slot] = ref
}
