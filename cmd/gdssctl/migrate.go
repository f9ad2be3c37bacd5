package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

func newMigrateCmd(opts *cliOptions) *cobra.Command {
	var (
		down    bool
		version int
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the audit store schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.cfg.Database.URL == "" {
				return errors.New("database.url (or GDSS_DATABASE_URL) is required")
			}
			target := -1
			switch {
			case down:
				target = 0
			case version > 0:
				target = version
			}
			v, err := store.Migrate(opts.cfg.Database.URL, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema at version %d\n", v)
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back every migration")
	cmd.Flags().IntVar(&version, "version", 0, "migrate to a specific version")
	return cmd
}
