package cli

import (
	"os"

	"github.com/spf13/cobra"

	"timetracker/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	configPath string
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand() *RootCommand {
	root := &RootCommand{}

	root.cmd = &cobra.Command{
		Use:   "timetracker",
		Short: "A personal time-tracking web application",
		Long: `Time Tracker is a single-user web application for tracking time spent
on work items. It stores everything in a local SQLite database and serves
a small browser UI for starting and stopping timers.

EXAMPLES:
  timetracker init --seed                  # Set up the database with sample data
  timetracker serve                        # Run the web server on 127.0.0.1:8000
  timetracker serve --port 9000 --dev      # Custom port, template auto-reload

CONFIGURATION:
  Configuration priority: command-line flags > environment variables > config file > defaults

  TIMETRACKER_CONFIG                       Path to a YAML config file
  TIMETRACKER_HOST                         Server host (default: 127.0.0.1)
  TIMETRACKER_PORT                         Server port (default: 8000)
  TIMETRACKER_DB_DIR                       Database directory (default: ~/.timetracker)
  TIMETRACKER_DB_FILENAME                  Database filename (default: db.db)
  TIMETRACKER_LOG_LEVEL                    Log level: debug, info, warn, error`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.cmd.PersistentFlags().StringVar(&root.configPath, "config", "", "path to YAML config file")

	root.cmd.AddCommand(newServeCommand(root))
	root.cmd.AddCommand(newInitCommand(root))

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// loadConfig builds the configuration honoring the --config flag
func (r *RootCommand) loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()

	if r.configPath != "" {
		if err := cfg.LoadFromFile(r.configPath); err != nil {
			return nil, err
		}
	} else if err := loadConfigFromEnvPath(cfg); err != nil {
		return nil, err
	}

	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadConfigFromEnvPath(cfg *config.Config) error {
	path := os.Getenv("TIMETRACKER_CONFIG")
	if path == "" {
		return nil
	}
	return cfg.LoadFromFile(path)
}
