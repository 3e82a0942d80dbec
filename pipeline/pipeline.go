// Package pipeline wires the geometry adapter, segment store, spatial
// index, decomposer, simplifier, and reassembler into the batch
// process described in §2 of the design: source polygons flow through
// decomposition once, then through the simplifier and reassembler once
// per requested tolerance, ascending, each stage consuming the mutated
// state left by the last (§4.5, "Multi-tolerance").
package pipeline

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/mikenye/borderlines/datasource"
	"github.com/mikenye/borderlines/decompose"
	"github.com/mikenye/borderlines/feature"
	"github.com/mikenye/borderlines/geomadapter"
	"github.com/mikenye/borderlines/reassemble"
	"github.com/mikenye/borderlines/segment"
	"github.com/mikenye/borderlines/simplify"
	"github.com/mikenye/borderlines/spatialindex"
)

// Target is one requested output: simplify to Tolerance, then write the
// result to OutputPath.
type Target struct {
	Tolerance  float64
	OutputPath string
}

// Pipeline runs the full simplify-and-reassemble process for one input
// layer across one or more tolerances.
type Pipeline struct {
	geo *geomadapter.Adapter
}

// New creates a Pipeline with a fresh geometry adapter.
func New() *Pipeline {
	return &Pipeline{geo: geomadapter.New()}
}

// Run loads inputPath, decomposes it into a segment store, then for each
// target (sorted ascending by tolerance, per §4.5) simplifies the live
// store in place and reassembles + writes the result. Any feature whose
// polygonization fails large is routed to an error sink derived from the
// target's output path.
//
// Run returns a fatal error only for input/decomposition/output-sink
// failures (§7); polygonization failures are handled internally per the
// classification policy and reported via the returned per-target
// summary.
func (p *Pipeline) Run(inputPath string, targets []Target) ([]Summary, error) {
	source, err := datasource.Open(inputPath)
	if err != nil {
		return nil, err
	}

	layer, err := source.Load(p.geo)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load %q: %w", inputPath, err)
	}
	log.Printf("loaded %d features from %s", len(layer.Features), inputPath)

	store := segment.New()
	idx := spatialindex.New()

	dec := decompose.New(p.geo)
	if err := dec.Decompose(store, idx, layer); err != nil {
		return nil, fmt.Errorf("pipeline: decompose: %w", err)
	}
	log.Printf("decomposed into %d lines, %d segments", store.CountLines(), store.CountActive())

	sorted := append([]Target(nil), targets...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tolerance < sorted[j].Tolerance })

	simp := simplify.New(p.geo)
	reasm := reassemble.New(p.geo)

	summaries := make([]Summary, 0, len(sorted))
	for _, t := range sorted {
		before := store.CountActive()
		simp.Simplify(store, idx, t.Tolerance)
		after := store.CountActive()
		log.Printf("simplified to tolerance %g: %d -> %d segments", t.Tolerance, before, after)

		results := reasm.Reassemble(store, layer.Features, t.Tolerance)

		summary, err := writeResults(p.geo, layer, results, t)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// Summary reports one target's outcome counts, for the CLI to print and
// tests to assert against.
type Summary struct {
	Target   Target
	Written  int
	Dropped  int
	Failed   int
}

func writeResults(geo *geomadapter.Adapter, layer feature.Layer, results []reassemble.Result, t Target) (Summary, error) {
	sink, err := datasource.NewSink(t.OutputPath, datasource.GeometryPolygon, layer.Fields, layer.SRS)
	if err != nil {
		return Summary{}, fmt.Errorf("pipeline: create output sink %q: %w", t.OutputPath, err)
	}

	var errSink datasource.Sink
	summary := Summary{Target: t}

	for _, r := range results {
		switch {
		case r.Dropped:
			summary.Dropped++
			log.Printf("dropped small feature %d at tolerance %g", r.Feature.Index, t.Tolerance)
		case r.Failed:
			summary.Failed++
			log.Printf("feature %d failed polygonization at tolerance %g; routing to error sink", r.Feature.Index, t.Tolerance)
			if errSink == nil {
				errSink, err = datasource.NewSink(errorSinkPath(t.OutputPath), datasource.GeometryMultiLineString, layer.Fields, layer.SRS)
				if err != nil {
					_ = sink.Close()
					return summary, fmt.Errorf("pipeline: create error sink for %q: %w", t.OutputPath, err)
				}
			}
			lineSoup := r.LineSoup
			if len(lineSoup) == 0 {
				continue
			}
			soup := geo.NewMultiLineString(lineSoup)
			if err := errSink.Append(r.Feature.Values, soup); err != nil {
				_ = sink.Close()
				return summary, fmt.Errorf("pipeline: write error sink: %w", err)
			}
		default:
			summary.Written++
			if err := sink.Append(r.Feature.Values, r.Polygon); err != nil {
				_ = sink.Close()
				return summary, fmt.Errorf("pipeline: write output: %w", err)
			}
		}
	}

	if err := sink.Close(); err != nil {
		return summary, fmt.Errorf("pipeline: close output sink %q: %w", t.OutputPath, err)
	}
	if errSink != nil {
		if err := errSink.Close(); err != nil {
			return summary, fmt.Errorf("pipeline: close error sink for %q: %w", t.OutputPath, err)
		}
	}

	return summary, nil
}

// errorSinkPath derives the error sink's filename from the output
// path by inserting an "-errors" suffix before the extension, e.g.
// "out.shp" -> "out-errors.shp".
func errorSinkPath(outputPath string) string {
	dot := strings.LastIndexByte(outputPath, '.')
	if dot < 0 {
		return outputPath + "-errors"
	}
	return outputPath[:dot] + "-errors" + outputPath[dot:]
}
