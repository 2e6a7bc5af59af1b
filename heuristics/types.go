package heuristics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirius-ms/ftheur/core"
	"github.com/sirius-ms/ftheur/ftree"
)

// Sentinel errors returned by strategies and the dispatcher.
var (
	// ErrNilGraph indicates a nil *core.Graph.
	ErrNilGraph = errors.New("heuristics: graph is nil")

	// ErrRootWithoutLosses indicates a graph whose root has no outgoing
	// loss. It is a configuration error of the graph builder.
	ErrRootWithoutLosses = errors.New("heuristics: root has no outgoing losses")

	// ErrUnsupportedAlgorithm indicates an unknown Algorithm value or name.
	ErrUnsupportedAlgorithm = errors.New("heuristics: unsupported algorithm")

	// ErrCanceled indicates the run was canceled; no tree is returned.
	// Returned errors also match the context error that caused them.
	ErrCanceled = errors.New("heuristics: canceled")

	// ErrNoSolution indicates a strategy could not produce a tree.
	ErrNoSolution = errors.New("heuristics: no solution")
)

// Algorithm selects a strategy.
type Algorithm int

const (
	// Greedy accepts losses by descending weight when colors stay consistent.
	Greedy Algorithm = iota
	// PrimStar grows a frontier from the root, taking the heaviest loss.
	PrimStar
	// DeepSearch descends along the heaviest loss and backtracks.
	DeepSearch
	// TopDown is a single descent without backtracking.
	TopDown
	// CriticalPath inserts the loss with the best lookahead score.
	CriticalPath
	// CriticalPath2 also credits compensation along the lookahead path.
	CriticalPath2
	// CriticalPathIsotopes is CriticalPath2 with isotope side chains.
	CriticalPathIsotopes
	// FastInsertion inserts by best incoming loss plus compensation.
	FastInsertion
	// LegacyInsertion rescans every move each round without caches.
	LegacyInsertion
	// ExtendedCriticalPath inserts whole critical paths, then relocates.
	ExtendedCriticalPath
)

var algorithmNames = [...]string{
	Greedy:               "greedy",
	PrimStar:             "prim",
	DeepSearch:           "deep",
	TopDown:              "topdown",
	CriticalPath:         "cp",
	CriticalPath2:        "cp2",
	CriticalPathIsotopes: "cp-isotopes",
	FastInsertion:        "insertion",
	LegacyInsertion:      "legacy",
	ExtendedCriticalPath: "cp-extended",
}

// Algorithms returns all algorithms in declaration order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(algorithmNames))
	for i := range out {
		out[i] = Algorithm(i)
	}

	return out
}

// String returns the short name used by ParseAlgorithm.
func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}

	return algorithmNames[a]
}

// ParseAlgorithm maps a short name (case-insensitive) to its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range algorithmNames {
		if n == name {
			return Algorithm(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

// prunesByDefault reports whether the tree of a is pruned under PruneDefault.
func (a Algorithm) prunesByDefault() bool {
	switch a {
	case Greedy, PrimStar, DeepSearch, TopDown:
		return true
	default:
		return false
	}
}

// Prune controls the negative-subtree pruning pass of the solution builder.
type Prune int

const (
	// PruneDefault prunes Greedy, PrimStar, DeepSearch and TopDown trees.
	PruneDefault Prune = iota
	// PruneAlways prunes every tree.
	PruneAlways
	// PruneNever keeps trees as selected.
	PruneNever
)

// Invalidation selects how critical-path memo entries are dropped when a
// color becomes used.
type Invalidation int

const (
	// InvalidateAll drops the whole memo table (generation bump).
	InvalidateAll Invalidation = iota
	// InvalidateAncestors drops only the entries of vertices that can reach
	// an affected vertex. Selections are identical to InvalidateAll.
	InvalidateAncestors
)

// Relocation selects the post-pass of ExtendedCriticalPath.
type Relocation int

const (
	// RelocateAll moves every selected fragment below the tree fragment
	// offering the heaviest loss into it.
	RelocateAll Relocation = iota
	// RelocateBySpanningTree rebuilds the selection as a maximum in-loss
	// arborescence over the selected fragments.
	RelocateBySpanningTree
	// RelocateNone skips the post-pass.
	RelocateNone
)

// Strategy selects losses of a candidate graph. The selection is color
// unique and rooted at the graph root, but may still contain losses that
// the solution builder drops or prunes.
type Strategy interface {
	// Name returns the algorithm's short name.
	Name() string

	// Select returns the selected loss IDs.
	Select(ctx context.Context, g *core.Graph) ([]int, error)
}

// Result is the outcome of Solve.
type Result struct {
	// Tree is the assembled solution.
	Tree *ftree.Tree

	// Losses are the loss IDs selected by the strategy, before assembly.
	Losses []int

	// Algorithm is the strategy that produced Tree.
	Algorithm Algorithm

	// Elapsed is the wall time of selection plus assembly.
	Elapsed time.Duration
}
