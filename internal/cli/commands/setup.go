package commands

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"github.com/leapstack-labs/ensvar/internal/cli/config"
	"github.com/leapstack-labs/ensvar/internal/cli/output"
	"github.com/leapstack-labs/ensvar/pkg/adapter"
	"github.com/leapstack-labs/ensvar/pkg/mapper"
	"github.com/leapstack-labs/ensvar/pkg/schema"
	"github.com/leapstack-labs/ensvar/pkg/variation"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Registry *schema.Registry
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the config stored on the command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Registry: variation.Schema(),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// OpenSession connects to the configured target and opens a mapper session.
// The returned cleanup closes the connection and must be called (typically via defer).
func (c *CommandContext) OpenSession(ctx context.Context) (*mapper.Session, func(), error) {
	if err := c.Cfg.RequireDatabase(); err != nil {
		return nil, nil, err
	}

	adpCfg := c.Cfg.Target.AdapterConfig()
	adp, err := adapter.Open(ctx, adpCfg, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = adp.Close()
	}

	s, err := mapper.NewSession(adp, c.Registry,
		mapper.WithLogger(c.Logger),
		mapper.WithMemoize(c.Cfg.Memoize),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	c.Logger.Debug("session opened",
		slog.String("session", s.ID()),
		slog.String("target", c.Cfg.Target.Type),
		slog.String("environment", c.Cfg.Environment))

	return s, cleanup, nil
}

// getConfig returns the configuration loaded by the root command, or defaults.
func getConfig(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := config.FromContext(ctx); ok {
			return cfg
		}
	}
	target := &config.TargetConfig{Type: config.DefaultTargetType}
	config.ApplyTargetDefaults(target)
	return &config.Config{
		Environment:  config.DefaultEnv,
		OutputFormat: config.DefaultOutput,
		Log:          config.LogConfig{Level: config.DefaultLogLevel, Format: config.DefaultLogFormat},
		Target:       target,
	}
}

// parseKey turns a command-line key into the value bound to the query.
// Integers are passed as int64 so they compare equal to integer key columns.
func parseKey(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}

// recordColumns orders the columns of records: declared columns first,
// then any others in sorted order.
func recordColumns(e *schema.Entity, recs ...map[string]any) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, c := range e.SelectColumns() {
		seen[c] = true
		cols = append(cols, c)
	}
	var extra []string
	for _, rec := range recs {
		for c := range rec {
			if !seen[c] {
				seen[c] = true
				extra = append(extra, c)
			}
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}
