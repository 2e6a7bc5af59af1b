// Package core - YAML/JSON graph documents.
//
// A Document is the on-disk shape of a candidate graph. Because YAML is a
// superset of JSON, Decode accepts both. Fragments are referenced by a
// free-form string key; exactly one fragment must set root: true.
//
//	fragments:
//	  - {key: r, root: true}
//	  - {key: a, formula: C6H12O6, color: 1, peak: 3, mass: 180.06}
//	losses:
//	  - {source: r, target: a, weight: 2.5}
//
// The codec lives with the graph model for tooling (CLI, fixtures); the
// heuristics never touch it.
package core

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is the serializable form of a Graph.
type Document struct {
	Fragments []FragmentDoc `yaml:"fragments" json:"fragments"`
	Losses    []LossDoc     `yaml:"losses" json:"losses"`
}

// FragmentDoc is one fragment entry of a Document.
type FragmentDoc struct {
	Key     string  `yaml:"key" json:"key"`
	Root    bool    `yaml:"root,omitempty" json:"root,omitempty"`
	Formula string  `yaml:"formula,omitempty" json:"formula,omitempty"`
	Color   int     `yaml:"color" json:"color"`
	PeakID  int     `yaml:"peak" json:"peak"`
	Mass    float64 `yaml:"mass,omitempty" json:"mass,omitempty"`
	Isotope bool    `yaml:"isotope,omitempty" json:"isotope,omitempty"`
}

// LossDoc is one loss entry of a Document.
type LossDoc struct {
	Source  string  `yaml:"source" json:"source"`
	Target  string  `yaml:"target" json:"target"`
	Weight  float64 `yaml:"weight" json:"weight"`
	Formula string  `yaml:"formula,omitempty" json:"formula,omitempty"`
}

// Decode reads a YAML or JSON document from r and builds the Graph.
//
// Errors: ErrBadDocument for syntax or reference problems, plus any
// validation sentinel from Build.
func Decode(r io.Reader) (*Graph, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}

	return doc.Graph()
}

// Encode writes g to w as a YAML document. Fragment keys are the decimal
// fragment IDs.
func Encode(w io.Writer, g *Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(g)); err != nil {
		return err
	}

	return enc.Close()
}

// NewDocument converts g into its serializable form.
// Complexity: O(V + E).
func NewDocument(g *Graph) Document {
	doc := Document{
		Fragments: make([]FragmentDoc, 0, g.Size()),
		Losses:    make([]LossDoc, 0, g.LossCount()),
	}
	for _, f := range g.fragments {
		fd := FragmentDoc{
			Key:     strconv.Itoa(f.ID),
			Formula: f.Formula,
			Color:   f.Color,
			PeakID:  f.PeakID,
			Mass:    f.Mass,
			Isotope: f.Isotope,
		}
		if f.ID == g.root {
			fd.Root, fd.Color, fd.PeakID = true, 0, 0
		}
		doc.Fragments = append(doc.Fragments, fd)
	}
	for _, l := range g.losses {
		doc.Losses = append(doc.Losses, LossDoc{
			Source:  strconv.Itoa(l.Source),
			Target:  strconv.Itoa(l.Target),
			Weight:  l.Weight,
			Formula: l.Formula,
		})
	}

	return doc
}

// Graph builds a Graph from the document. The root entry may appear
// anywhere in the fragment list; all other fragments keep their relative
// order, so IDs are stable for a given document.
func (d Document) Graph() (*Graph, error) {
	b := NewGraphBuilder()
	ids := make(map[string]int, len(d.Fragments))

	// 1) The root first.
	var rootSeen bool
	for _, fd := range d.Fragments {
		if !fd.Root {
			continue
		}
		if rootSeen {
			return nil, fmt.Errorf("%w: second root %q", ErrBadDocument, fd.Key)
		}
		rootSeen = true
		id, err := b.AddRoot()
		if err != nil {
			return nil, err
		}
		ids[fd.Key] = id
	}
	if !rootSeen {
		return nil, fmt.Errorf("%w: %w", ErrBadDocument, ErrNoRoot)
	}

	// 2) Remaining fragments in document order.
	for _, fd := range d.Fragments {
		if fd.Root {
			continue
		}
		if fd.Key == "" {
			return nil, fmt.Errorf("%w: fragment without key", ErrBadDocument)
		}
		if _, dup := ids[fd.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrBadDocument, fd.Key)
		}
		id, err := b.AddFragment(Fragment{
			Color:   fd.Color,
			Formula: fd.Formula,
			PeakID:  fd.PeakID,
			Mass:    fd.Mass,
			Isotope: fd.Isotope,
		})
		if err != nil {
			return nil, err
		}
		ids[fd.Key] = id
	}

	// 3) Losses.
	for i, ld := range d.Losses {
		src, ok := ids[ld.Source]
		if !ok {
			return nil, fmt.Errorf("%w: loss %d: unknown source %q", ErrBadDocument, i, ld.Source)
		}
		dst, ok := ids[ld.Target]
		if !ok {
			return nil, fmt.Errorf("%w: loss %d: unknown target %q", ErrBadDocument, i, ld.Target)
		}
		if _, err := b.AddNamedLoss(src, dst, ld.Weight, ld.Formula); err != nil {
			return nil, err
		}
	}

	return b.Build()
}
