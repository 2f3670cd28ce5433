package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"timetracker/internal/api"
	"timetracker/internal/repository/sqlite"
)

// newInitCommand creates the init subcommand
func newInitCommand(root *RootCommand) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database and run migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.Database.Dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
				return fmt.Errorf("create database directory: %w", err)
			}

			// Opening the repository runs migrations
			repo, err := sqlite.NewWithConfig(cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			if seed {
				if err := seedDatabase(cmd.Context(), api.NewWithConfig(repo, cfg)); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Database seeded with sample data")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s\n", cfg.GetDatabasePath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "insert sample work items and entries")

	return cmd
}

// seedDatabase inserts a handful of work items and closed entries for
// trying the application out.
func seedDatabase(ctx context.Context, a api.API) error {
	names := []string{"Some client", "Internal project", "Training", "Eh", "Testing"}

	items := make(map[string]int64, len(names))
	for _, name := range names {
		item, err := a.CreateWorkItem(ctx, name)
		if err != nil {
			return err
		}
		items[name] = item.ID
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	morning := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 9, 0, 0, 0, yesterday.Location())

	seedEntries := []struct {
		item     string
		start    time.Time
		duration time.Duration
	}{
		{"Internal project", morning, time.Minute},
		{"Some client", morning.Add(30 * time.Minute), 10 * time.Minute},
		{"Training", morning.Add(2 * time.Hour), 100 * time.Minute},
		{"Testing", morning.Add(4 * time.Hour), 1000 * time.Minute},
	}

	for _, se := range seedEntries {
		end := se.start.Add(se.duration)
		if _, err := a.CreateTimeEntry(ctx, items[se.item], se.start, &end); err != nil {
			return err
		}
	}
	return nil
}
