package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sirius-ms/ftheur/batch"
	"github.com/sirius-ms/ftheur/core"
	"github.com/sirius-ms/ftheur/ftree"
	"github.com/sirius-ms/ftheur/heuristics"
	"github.com/sirius-ms/ftheur/observability"
)

type solveOpts struct {
	algorithm    string
	prune        string
	invalidation string
	relocation   string
	isotopes     bool
	format       string
	workers      int
	metrics      bool
}

var (
	pruneModes = map[string]heuristics.Prune{
		"default": heuristics.PruneDefault,
		"always":  heuristics.PruneAlways,
		"never":   heuristics.PruneNever,
	}
	invalidationModes = map[string]heuristics.Invalidation{
		"all":       heuristics.InvalidateAll,
		"ancestors": heuristics.InvalidateAncestors,
	}
	relocationModes = map[string]heuristics.Relocation{
		"all":      heuristics.RelocateAll,
		"spanning": heuristics.RelocateBySpanningTree,
		"none":     heuristics.RelocateNone,
	}
)

func newSolveCmd() *cobra.Command {
	opts := solveOpts{}

	cmd := &cobra.Command{
		Use:   "solve [graph.yaml ...]",
		Short: "Compute fragmentation trees for candidate graph documents",
		Long: `Reads one or more candidate graph documents (YAML or JSON, "-" for stdin),
solves them concurrently and prints one tree per input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	names := make([]string, 0, len(heuristics.Algorithms()))
	for _, a := range heuristics.Algorithms() {
		names = append(names, a.String())
	}
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", heuristics.CriticalPath2.String(), "heuristic: "+strings.Join(names, ", "))
	cmd.Flags().StringVar(&opts.prune, "prune", "default", "negative subtree pruning: default, always, never")
	cmd.Flags().StringVar(&opts.invalidation, "invalidation", "all", "critical-path memo invalidation: all, ancestors")
	cmd.Flags().StringVar(&opts.relocation, "relocation", "all", "cp-extended post-pass: all, spanning, none")
	cmd.Flags().BoolVar(&opts.isotopes, "isotopes", false, "re-chain isotope fragments for every algorithm")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, yaml")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", batch.DefaultWorkers, "graphs solved concurrently")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "log collected solver metrics at the end")

	return cmd
}

// heuristicOptions maps flag values onto solver options.
func (o solveOpts) heuristicOptions() ([]heuristics.Option, error) {
	alg, err := heuristics.ParseAlgorithm(o.algorithm)
	if err != nil {
		return nil, err
	}
	prune, ok := pruneModes[o.prune]
	if !ok {
		return nil, fmt.Errorf("unknown prune mode %q", o.prune)
	}
	inv, ok := invalidationModes[o.invalidation]
	if !ok {
		return nil, fmt.Errorf("unknown invalidation mode %q", o.invalidation)
	}
	rel, ok := relocationModes[o.relocation]
	if !ok {
		return nil, fmt.Errorf("unknown relocation mode %q", o.relocation)
	}

	out := []heuristics.Option{
		heuristics.WithAlgorithm(alg),
		heuristics.WithPruning(prune),
		heuristics.WithInvalidation(inv),
		heuristics.WithRelocation(rel),
	}
	if o.isotopes {
		out = append(out, heuristics.WithIsotopeReattachment())
	}

	return out, nil
}

func runSolve(ctx context.Context, w io.Writer, paths []string, opts solveOpts) error {
	logger := loggerFromContext(ctx)

	if opts.format != "text" && opts.format != "yaml" {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	if opts.workers < 1 {
		return fmt.Errorf("--workers must be >= 1, got %d", opts.workers)
	}
	hopts, err := opts.heuristicOptions()
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	if opts.metrics {
		reg = prometheus.NewRegistry()
		hooks, err := observability.NewPrometheusHooks(reg)
		if err != nil {
			return err
		}
		hopts = append(hopts, heuristics.WithHooks(hooks))
	}

	jobs := make([]batch.Job, len(paths))
	for i, p := range paths {
		g, err := readGraph(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		logger.Debug("loaded graph", "path", p, "fragments", g.Size(), "losses", g.LossCount(), "colors", g.NumColors())
		jobs[i] = batch.Job{ID: p, Graph: g}
	}

	results, err := batch.Run(ctx, jobs,
		batch.WithWorkers(opts.workers),
		batch.WithLogger(logger),
		batch.WithDefaults(hopts...),
	)
	if err != nil {
		return err
	}

	for i, r := range results {
		if r.Err != nil {
			logger.Error("solve failed", "path", r.ID, "err", r.Err)
			continue
		}
		if err := writeTree(w, opts.format, r.ID, jobs[i].Graph, r.Result); err != nil {
			return err
		}
	}

	if reg != nil {
		mfs, err := reg.Gather()
		if err != nil {
			return err
		}
		for _, mf := range mfs {
			logger.Info("metric", "name", mf.GetName(), "series", len(mf.GetMetric()))
		}
	}

	return batch.Summarize(results).Err()
}

func readGraph(path string) (*core.Graph, error) {
	f, closeFn, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return core.Decode(f)
}

type treeDoc struct {
	Source    string    `yaml:"source"`
	Algorithm string    `yaml:"algorithm"`
	Weight    float64   `yaml:"weight"`
	Nodes     []nodeDoc `yaml:"nodes"`
}

type nodeDoc struct {
	Fragment int     `yaml:"fragment"`
	Formula  string  `yaml:"formula,omitempty"`
	Color    int     `yaml:"color"`
	Mass     float64 `yaml:"mass"`
	Parent   int     `yaml:"parent"`
	Loss     int     `yaml:"loss"`
	Weight   float64 `yaml:"weight"`
	Isotope  bool    `yaml:"isotope,omitempty"`
}

func newTreeDoc(source string, res *heuristics.Result) treeDoc {
	doc := treeDoc{Source: source, Algorithm: res.Algorithm.String(), Weight: res.Tree.Weight}
	for _, n := range res.Tree.Nodes() {
		doc.Nodes = append(doc.Nodes, newNodeDoc(n))
	}

	return doc
}

func newNodeDoc(n *ftree.Node) nodeDoc {
	parent := -1
	if n.Parent != nil {
		parent = n.Parent.Vertex
	}

	return nodeDoc{
		Fragment: n.Vertex,
		Formula:  n.Formula,
		Color:    n.Color,
		Mass:     n.Mass,
		Parent:   parent,
		Loss:     n.Loss,
		Weight:   n.Weight,
		Isotope:  n.Isotope,
	}
}

func writeTree(w io.Writer, format, source string, g *core.Graph, res *heuristics.Result) error {
	if format == "yaml" {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newTreeDoc(source, res)); err != nil {
			return err
		}
		return enc.Close()
	}

	if _, err := fmt.Fprintf(w, "# %s (%s, %d fragments, %d candidates)\n", source, res.Algorithm, res.Tree.Size(), g.Size()-1); err != nil {
		return err
	}
	return res.Tree.Format(w)
}
