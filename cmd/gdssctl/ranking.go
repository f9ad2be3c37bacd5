package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/backend"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/ranking"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/session"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

func newRankingCmd(opts *cliOptions) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "ranking <project-id>",
		Short: "Print the reconciled ranking of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			m, err := scoring.ParseMode(mode, opts.cfg.Mode())
			if err != nil {
				return err
			}

			logger := quietLogger()
			client := backend.NewHTTPClient(opts.cfg.Backend.URL, opts.cfg.BackendTimeout())
			svc := ranking.NewService(client, scoring.NewReconciler(m, logger), opts.cfg.Scoring.Classification, logger)
			r := svc.Build(cmd.Context(), session.Session{Token: opts.token, Role: store.RoleAdmin}, projectID, m)
			for _, e := range r.FetchErrors {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", e)
			}
			return printRanking(cmd, r)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "reconcile mode: consensus-only or fallback-to-any")
	return cmd
}

func printRanking(cmd *cobra.Command, r *ranking.Ranking) error {
	out := cmd.OutOrStdout()
	if len(r.Entries) == 0 {
		fmt.Fprintln(out, "No results yet.")
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header([]string{"Rank", "Name", "Score", "Class"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, e := range r.Classification {
		data = append(data, []string{
			strconv.Itoa(e.Rank),
			e.Name,
			strconv.FormatFloat(e.Score, 'f', 4, 64),
			string(e.Class),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Mode: %s. Alternatives ranked: %d, average score: %.4f, top: %s\n",
		r.Mode, r.Summary.Count, r.Summary.AverageScore, r.Summary.Top.Name)
	fmt.Fprintf(out, "Accepted: %d, interview: %d, rejected: %d\n",
		r.ClassCounts[scoring.ClassAccepted], r.ClassCounts[scoring.ClassInterview], r.ClassCounts[scoring.ClassRejected])
	if r.Diagnostics.UsedFallback {
		fmt.Fprintln(out, "No consensus results found; showing individual results.")
	}
	return nil
}
