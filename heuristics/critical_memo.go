package heuristics

import "math"

// criticalMemo caches the critical-path score of every fragment:
//
//	cp(v) = max(0, max_{v→x, x free} w(v→x) + bonus(x) + cp(x))
//
// bonus is zero for CriticalPath and the finite compensation of x for
// CriticalPath2. Entries are valid while stamp[v] == gen. The recursion is
// unrolled onto an explicit stack, so deep graphs cannot overflow.
type criticalMemo struct {
	s     *state
	bonus func(v int) float64
	mode  Invalidation

	val   []float64
	stamp []uint32
	gen   uint32

	stack []int

	seen    []uint32 // ancestor walk marks
	seenGen uint32
	queue   []int
}

func newCriticalMemo(s *state, mode Invalidation, bonus func(int) float64) *criticalMemo {
	n := s.g.Size()

	return &criticalMemo{
		s:     s,
		bonus: bonus,
		mode:  mode,
		val:   make([]float64, n),
		stamp: make([]uint32, n),
		gen:   1,
		seen:  make([]uint32, n),
	}
}

func (m *criticalMemo) valid(v int) bool { return m.stamp[v] == m.gen }

// edgeValue returns w(id) + bonus(x) + cp(x) for a resolved target x.
func (m *criticalMemo) edgeValue(id int) float64 {
	g := m.s.g
	x := g.Target(id)
	v := g.Weight(id) + m.val[x]
	if m.bonus != nil {
		v += m.bonus(x)
	}

	return v
}

// usable reports whether loss id may extend a critical path.
func (m *criticalMemo) usable(id int) bool {
	g := m.s.g

	return m.s.free(g.Target(id)) && !math.IsNaN(g.Weight(id))
}

// get returns cp(v).
//
// Steps:
//  1. Push v; while the stack is non-empty inspect the top u.
//  2. Push every usable, unresolved child of u and continue.
//  3. With all children resolved, store the best edge value (floored at 0).
//
// Everything pushed above u is resolved before u resurfaces, so every
// fragment is expanded at most twice per call.
//
// Complexity: O(V + E) for a cold cache, O(1) for a hit.
func (m *criticalMemo) get(v int) float64 {
	if m.valid(v) {
		return m.val[v]
	}
	g := m.s.g
	var (
		u, x    int
		id      int
		pending bool
		best    float64
		e       float64
	)
	m.stack = append(m.stack[:0], v)
	for len(m.stack) > 0 {
		u = m.stack[len(m.stack)-1]
		if m.valid(u) {
			m.stack = m.stack[:len(m.stack)-1]
			continue
		}

		pending = false
		for _, id = range g.Outgoing(u) {
			if !m.usable(id) {
				continue
			}
			if x = g.Target(id); !m.valid(x) {
				m.stack = append(m.stack, x)
				pending = true
			}
		}
		if pending {
			continue
		}

		best = 0
		for _, id = range g.Outgoing(u) {
			if !m.usable(id) {
				continue
			}
			if e = m.edgeValue(id); e > best {
				best = e
			}
		}
		m.val[u] = best
		m.stamp[u] = m.gen
		m.stack = m.stack[:len(m.stack)-1]
	}

	return m.val[v]
}

// invalidate drops the entries that may depend on the given fragments.
// Under InvalidateAll the whole table goes; under InvalidateAncestors only
// the fragments themselves and everything that can reach them.
func (m *criticalMemo) invalidate(roots []int) {
	if len(roots) == 0 {
		return
	}
	if m.mode == InvalidateAll {
		m.gen++

		return
	}

	g := m.s.g
	m.seenGen++
	m.queue = m.queue[:0]
	for _, r := range roots {
		if m.seen[r] != m.seenGen {
			m.seen[r] = m.seenGen
			m.queue = append(m.queue, r)
		}
	}
	var u, z int
	for head := 0; head < len(m.queue); head++ {
		u = m.queue[head]
		m.stamp[u] = 0
		for _, id := range g.Incoming(u) {
			if z = g.Source(id); m.seen[z] != m.seenGen {
				m.seen[z] = m.seenGen
				m.queue = append(m.queue, z)
			}
		}
	}
}
