package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"mealcare/internal/app"
	"mealcare/internal/platform/config"
	"mealcare/internal/platform/logger"
	"mealcare/pkg/domain"
	"mealcare/pkg/requestcontext"
)

// cli holds what every subcommand shares once the root has parsed flags.
type cli struct {
	configPath string
	actor      string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "mealcare",
		Short:        "Operate the mealcare persistence core",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			log, err := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.logger = log
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&c.actor, "as-user", "", "User ID recorded as the actor in audit entries")

	root.AddCommand(
		c.newSchemaCommand(),
		c.newTenantCommand(),
		c.newUserCommand(),
		c.newAuditCommand(),
		c.newServeCommand(),
	)
	return root
}

// open connects to the database and wires the services.
func (c *cli) open(ctx context.Context) (*app.App, error) {
	return app.Open(ctx, *c.cfg, app.WithLogger(c.logger))
}

// actorContext attaches --as-user, if given, so audit entries name the operator.
func (c *cli) actorContext(ctx context.Context) (context.Context, error) {
	if c.actor == "" {
		return ctx, nil
	}
	userID, err := domain.ParseUserID(c.actor)
	if err != nil {
		return nil, err
	}
	return requestcontext.WithUserID(ctx, userID), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
