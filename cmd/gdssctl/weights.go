package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
)

var errInvalidWeights = errors.New("weights are not valid")

func newWeightsCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Compute and check criterion weights",
	}
	cmd.AddCommand(newWeightsEqualCmd(), newWeightsCheckCmd(opts))
	return cmd
}

func newWeightsEqualCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equal <criterion-id>...",
		Short: "Distribute weight equally across criteria",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := strconv.ParseInt(a, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid criterion id %q", a)
				}
				ids = append(ids, id)
			}
			return printWeights(cmd, scoring.DistributeEqually(ids))
		},
	}
}

func newWeightsCheckCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <criterion-id>=<weight>...",
		Short: "Validate a weight assignment and suggest a normalized one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := parseAssignment(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			n := scoring.NewWeightNormalizer(opts.cfg.Scoring.WeightTolerance)
			if err := n.Validate(w); err != nil {
				fmt.Fprintln(out, "Invalid:", err)
				if scoring.ComputeTotal(w) > 0 {
					fmt.Fprintln(out, "Suggested normalized weights:")
					if err := printWeights(cmd, scoring.NormalizeProportionally(w)); err != nil {
						return err
					}
				}
				return errInvalidWeights
			}
			fmt.Fprintf(out, "Valid: weights sum to %.4f\n", scoring.ComputeTotal(w))
			return nil
		},
	}
}

// parseAssignment reads "id=weight" pairs.
func parseAssignment(args []string) (scoring.Weights, error) {
	w := make(scoring.Weights, len(args))
	for _, a := range args {
		idStr, weightStr, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("expected <criterion-id>=<weight>, got %q", a)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid criterion id %q", idStr)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(weightStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q for criterion %d", weightStr, id)
		}
		w[id] = v
	}
	return w, nil
}

func printWeights(cmd *cobra.Command, w scoring.Weights) error {
	out := cmd.OutOrStdout()
	table := tablewriter.NewWriter(out)
	table.Header([]string{"Criterion", "Weight"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, id := range slices.Sorted(maps.Keys(w)) {
		data = append(data, []string{
			strconv.FormatInt(id, 10),
			strconv.FormatFloat(w[id], 'f', 4, 64),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Total: %.4f\n", scoring.ComputeTotal(w))
	return nil
}
