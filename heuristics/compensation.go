package heuristics

import "math"

// compensation maintains maxOut per fragment: the weight recovered by
// moving already-selected fragments below it, were it inserted now.
//
//	maxOut(z) = Σ_{w selected} max(0, max_{z→w} w(z→w) − w(sel(w)))
//
// The table is updated incrementally whenever the selected loss of some w
// changes; a fragment whose color is used carries −Inf.
type compensation struct {
	s   *state
	out []float64

	// changed collects fragments whose finite maxOut moved since the last
	// drain; the CP2 memo uses it for partial invalidation.
	changed []int
	track   bool

	heavy *heaviest
}

func newCompensation(s *state) *compensation {
	c := &compensation{s: s, out: make([]float64, s.g.Size()), heavy: newHeaviest(s.g.Size())}
	c.out[s.g.Root()] = math.Inf(-1)

	return c
}

// gain returns maxOut(v).
func (c *compensation) gain(v int) float64 { return c.out[v] }

// drain returns and clears the changed list.
func (c *compensation) drain() []int {
	out := c.changed
	c.changed = c.changed[:0:0]

	return out
}

// colorUsed marks every fragment of color col as unusable.
func (c *compensation) colorUsed(col int) {
	for _, v := range c.s.g.FragmentsOfColor(col) {
		c.out[v] = math.Inf(-1)
	}
}

// selectionChanged re-credits every predecessor z of w after the selected
// loss into w changed weight from oldW to newW. oldW = +Inf means w was not
// selected before. A predecessor with parallel losses into w is credited
// once, through the heaviest.
func (c *compensation) selectionChanged(w int, oldW, newW float64) {
	g := c.s.g
	h := c.heavy
	h.reset()
	for _, id := range g.Incoming(w) {
		if z := g.Source(id); !math.IsInf(c.out[z], -1) {
			h.offer(g, z, id)
		}
	}

	for _, z := range h.keys {
		lw := g.Weight(h.loss[z])
		delta := math.Max(0, lw-newW) - math.Max(0, lw-oldW)
		if delta == 0 {
			continue
		}
		c.out[z] = math.Max(0, c.out[z]+delta)
		if c.track {
			c.changed = append(c.changed, z)
		}
	}
}

// insert selects loss id through state.insertRelocating and keeps the
// table current.
func (c *compensation) insert(id int) {
	g := c.s.g
	t := g.Target(id)
	c.s.insertRelocating(id, func(w, old, cur int) {
		if old < 0 {
			c.colorUsed(g.Color(t))
			c.selectionChanged(t, math.Inf(1), g.Weight(cur))
			return
		}
		c.selectionChanged(w, g.Weight(old), g.Weight(cur))
	})
}
