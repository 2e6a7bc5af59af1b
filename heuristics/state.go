package heuristics

import (
	"context"
	"fmt"
	"math"

	"github.com/soniakeys/bits"

	"github.com/sirius-ms/ftheur/core"
)

// canceler polls the context and the optional external check.
type canceler struct {
	ctx   context.Context
	check func() bool
	every int
	steps int
}

func newCanceler(ctx context.Context, o Options) *canceler {
	if ctx == nil {
		ctx = context.Background()
	}
	every := o.CheckInterval
	if every < 1 {
		every = DefaultCheckInterval
	}

	return &canceler{ctx: ctx, check: o.CancelCheck, every: every}
}

// poll returns a wrapped ErrCanceled once cancellation was signaled.
// Called at least once per outer iteration.
func (c *canceler) poll() error {
	if err := c.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	if c.check != nil && c.check() {
		return fmt.Errorf("%w: %w", ErrCanceled, context.Canceled)
	}

	return nil
}

// step is poll throttled to every CheckInterval calls, for inner loops.
func (c *canceler) step() error {
	c.steps++
	if c.steps < c.every {
		return nil
	}
	c.steps = 0

	return c.poll()
}

// state is the private working state of one strategy run: used colors,
// the loss selected per color and the set of selected fragments.
type state struct {
	g *core.Graph

	used     bits.Bits // colors in the selection
	selLoss  []int     // color → selected loss, -1 if none
	inTree   []bool    // fragment → selected (root always)
	order    []int     // selected fragments in insertion order, root first
	rootLoss int       // the single selected loss leaving the root, -1 if none

	heavy *heaviest // scratch for relocationGain
}

func newState(g *core.Graph) *state {
	s := &state{
		g:        g,
		used:     bits.New(g.NumColors()),
		selLoss:  make([]int, g.NumColors()),
		inTree:   make([]bool, g.Size()),
		order:    make([]int, 0, g.NumColors()+1),
		rootLoss: -1,
	}
	for c := range s.selLoss {
		s.selLoss[c] = -1
	}
	s.inTree[g.Root()] = true
	s.order = append(s.order, g.Root())

	return s
}

// colorUsed reports whether color c is taken.
func (s *state) colorUsed(c int) bool { return s.used.Bit(c) == 1 }

// free reports whether fragment v may still be selected.
func (s *state) free(v int) bool { return !s.colorUsed(s.g.Color(v)) }

// isSource reports whether losses leaving v may be selected. The root
// stops being a source once its single child is chosen.
func (s *state) isSource(v int) bool {
	if v == s.g.Root() {
		return s.rootLoss < 0
	}

	return s.inTree[v]
}

// selectable reports whether loss id can be added: its source is a
// source, its target color is free and its weight is a number.
func (s *state) selectable(id int) bool {
	return s.isSource(s.g.Source(id)) && s.free(s.g.Target(id)) && !math.IsNaN(s.g.Weight(id))
}

// add selects loss id. The caller guarantees selectable(id).
func (s *state) add(id int) {
	t := s.g.Target(id)
	c := s.g.Color(t)
	s.used.SetBit(c, 1)
	s.selLoss[c] = id
	s.inTree[t] = true
	s.order = append(s.order, t)
	if s.g.Source(id) == s.g.Root() {
		s.rootLoss = id
	}
}

// reassign replaces the selected loss into Target(id) by id and returns
// the previous one. Target(id) must be selected.
func (s *state) reassign(id int) int {
	c := s.g.Color(s.g.Target(id))
	old := s.selLoss[c]
	s.selLoss[c] = id

	return old
}

// insertRelocating selects loss id and then moves below the new fragment
// every selected fragment it reaches with a strictly heavier loss. The
// graph is acyclic, so a moved fragment is never an ancestor of the new
// one. changed, if non-nil, sees the insertion as (Target(id), -1, id)
// followed by one (w, old, new) call per move.
func (s *state) insertRelocating(id int, changed func(w, old, cur int)) {
	g := s.g
	t := g.Target(id)
	s.add(id)
	if changed != nil {
		changed(t, -1, id)
	}

	for _, l := range g.Outgoing(t) {
		w := g.Target(l)
		cur := s.selectedInto(w)
		if cur < 0 || !(g.Weight(l) > g.Weight(cur)) {
			continue
		}
		s.reassign(l)
		if changed != nil {
			changed(w, cur, l)
		}
	}
}

// relocationGain returns what inserting fragment x would recover by moving
// selected fragments below it, computed from scratch. Parallel losses into
// the same fragment count once, through the heaviest.
func (s *state) relocationGain(x int) float64 {
	g := s.g
	h := s.scratch()
	for _, l := range g.Outgoing(x) {
		h.offer(g, g.Target(l), l)
	}

	var sum float64
	for _, w := range h.keys {
		cur := s.selectedInto(w)
		if cur < 0 {
			continue
		}
		if d := g.Weight(h.loss[w]) - g.Weight(cur); d > 0 {
			sum += d
		}
	}

	return sum
}

// scratch returns the state's reset heaviest table, allocated on first use.
func (s *state) scratch() *heaviest {
	if s.heavy == nil {
		s.heavy = newHeaviest(s.g.Size())
	}
	s.heavy.reset()

	return s.heavy
}

// heaviest keeps, per fragment, the heaviest of the losses offered for it.
// A generation counter makes reset O(1).
type heaviest struct {
	gen  []uint32
	loss []int
	keys []int // fragments offered since the last reset, first-seen order
	cur  uint32
}

func newHeaviest(n int) *heaviest {
	return &heaviest{gen: make([]uint32, n), loss: make([]int, n)}
}

func (h *heaviest) reset() {
	h.cur++
	h.keys = h.keys[:0]
}

// offer records loss id under fragment v unless v already holds a loss at
// least as heavy. NaN weights are ignored.
func (h *heaviest) offer(g *core.Graph, v, id int) {
	w := g.Weight(id)
	if math.IsNaN(w) {
		return
	}
	if h.gen[v] != h.cur {
		h.gen[v] = h.cur
		h.loss[v] = id
		h.keys = append(h.keys, v)
		return
	}
	if w > g.Weight(h.loss[v]) {
		h.loss[v] = id
	}
}

// selectedInto returns the selected loss entering fragment w, or -1.
func (s *state) selectedInto(w int) int {
	if !s.inTree[w] || w == s.g.Root() {
		return -1
	}

	return s.selLoss[s.g.Color(w)]
}

// selection returns the selected losses in color order.
func (s *state) selection() []int {
	out := make([]int, 0, len(s.order)-1)
	for _, id := range s.selLoss {
		if id >= 0 {
			out = append(out, id)
		}
	}

	return out
}

// weight returns the sum of the selected loss weights.
func (s *state) weight() float64 {
	var w float64
	for _, id := range s.selLoss {
		if id >= 0 {
			w += s.g.Weight(id)
		}
	}

	return w
}

// better reports whether w beats the incumbent best. NaN never wins; a
// missing incumbent (found == false) is beaten by any number.
func better(w float64, found bool, best float64) bool {
	if math.IsNaN(w) {
		return false
	}

	return !found || w > best
}
