// Command borderlines is the CLI surface described in §6 of the design:
// an optional collaborator over the core pipeline, not part of it.
//
// Usage: borderlines <input> <tolerance1> <output1> [<tolerance2> <output2> ...]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/mikenye/borderlines/pipeline"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:      "borderlines",
		Usage:     "Topology-preserving polygon simplification across one or more tolerances",
		UsageText: "borderlines <input> <tolerance1> <output1> [<tolerance2> <output2> ...]",
		ArgsUsage: "<input> <tolerance1> <output1> [<tolerance2> <output2> ...]",
		HideVersion: true,
		Action:      run,
		Authors:     []any{"https://github.com/mikenye"},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 3 || (len(args)-1)%2 != 0 {
		return fmt.Errorf("usage: %s", cmd.UsageText)
	}

	input := args[0]
	pairs := args[1:]

	targets := make([]pipeline.Target, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		tolerance, err := strconv.ParseInt(pairs[i], 10, 64)
		if err != nil || tolerance <= 0 {
			return fmt.Errorf("tolerance must be a positive integer, got %q", pairs[i])
		}
		targets = append(targets, pipeline.Target{
			Tolerance:  float64(tolerance),
			OutputPath: pairs[i+1],
		})
	}

	p := pipeline.New()
	summaries, err := p.Run(input, targets)
	if err != nil {
		return err
	}

	for _, s := range summaries {
		log.Printf(
			"%s @ tolerance %g: wrote %d, dropped %d, failed %d",
			s.Target.OutputPath, s.Target.Tolerance, s.Written, s.Dropped, s.Failed,
		)
	}
	return nil
}
