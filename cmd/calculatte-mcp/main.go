package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/averycrespi/calculatte-mcp/internal/config"
	"github.com/averycrespi/calculatte-mcp/internal/logging"
	"github.com/averycrespi/calculatte-mcp/internal/server"
	"github.com/averycrespi/calculatte-mcp/pkg/calculus"
	"github.com/averycrespi/calculatte-mcp/pkg/project"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          project.Name,
		Short:        "Numerical calculus tools over the Model Context Protocol",
		Version:      project.Version,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "Path to a YAML configuration file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.Int("sample-count", 0, "Number of Simpson's rule sample points")
	flags.Int("decimal-places", 0, "Decimal places for every operation, -1 disables rounding")

	root.AddCommand(newServeCommand(), newCallCommand(), newToolsCommand())
	return root
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculus tools to MCP clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			s, err := server.NewCalculatteServer(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return s.Serve(ctx)
		},
	}

	flags := cmd.Flags()
	flags.StringP("transport", "t", "", "Transport to serve on (stdio, sse)")
	flags.StringP("address", "a", "", "Listen address of the sse transport")
	flags.String("base-url", "", "Public base URL of the sse transport")
	flags.String("metrics-address", "", "Serve Prometheus metrics on this address")
	flags.Duration("call-timeout", 0, "Maximum evaluation time of a tool call, 0 disables it")
	flags.Float64("rate-limit", 0, "Maximum tool calls per second, enables rate limiting")
	flags.Int("rate-burst", 0, "Tool calls allowed in a burst above the rate limit")
	return cmd
}

func newCallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool> [key=value...]",
		Short: "Run a single tool call and print its result",
		Example: "  calculatte-mcp call integrate expression='x^2' a=0 b=3\n" +
			"  calculatte-mcp call set_accuracy --json '{\"precision\": {\"integration\": 6}}'",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			raw, err := cmd.Flags().GetString("json")
			if err != nil {
				return err
			}
			arguments, err := parseArguments(args[1:], raw)
			if err != nil {
				return err
			}

			logger := logging.NewOrNop(cfg.Logging)
			defer func() { _ = logger.Sync() }()

			s, err := server.NewCalculatteServer(cfg, logger)
			if err != nil {
				return err
			}

			result, err := s.Call(cmd.Context(), args[0], arguments)
			if err != nil {
				return err
			}

			text := server.ResultText(result)
			if result.IsError {
				return errors.New(text)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().String("json", "", "Tool arguments as a JSON object, merged under key=value arguments")
	return cmd
}

func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := server.NewCalculatteServer(config.Default(), zap.NewNop())
			if err != nil {
				return err
			}
			return printTools(cmd.OutOrStdout(), s)
		},
	}
}

func printTools(out io.Writer, s *server.CalculatteServer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, tool := range s.Tools() {
		description, _, _ := strings.Cut(tool.Description, ". ")
		if _, err := fmt.Fprintf(w, "%s\t%s\n", tool.Name, description); err != nil {
			return err
		}
	}
	return w.Flush()
}

// loadConfig reads the configuration file and environment, then applies any flags the user set
func loadConfig(flags *pflag.FlagSet) (*types.Config, error) {
	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if err := applyFlags(flags, cfg); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with every flag explicitly set on the command line
func applyFlags(flags *pflag.FlagSet, cfg *types.Config) error {
	var errs []error
	flags.Visit(func(f *pflag.Flag) {
		var err error
		switch f.Name {
		case "log-level":
			cfg.Logging.Level = f.Value.String()
		case "sample-count":
			cfg.Accuracy.SampleCount, err = flags.GetInt(f.Name)
		case "decimal-places":
			var places int
			places, err = flags.GetInt(f.Name)
			cfg.Accuracy.Precision = calculus.UniformPrecision(places)
		case "transport":
			cfg.Server.Transport = f.Value.String()
		case "address":
			cfg.Server.Address = f.Value.String()
		case "base-url":
			cfg.Server.BaseURL = f.Value.String()
		case "metrics-address":
			cfg.Metrics.Address = f.Value.String()
		case "call-timeout":
			var timeout time.Duration
			timeout, err = flags.GetDuration(f.Name)
			cfg.Server.CallTimeout = timeout
		case "rate-limit":
			cfg.RateLimit.Enabled = true
			cfg.RateLimit.RequestsPerSecond, err = flags.GetFloat64(f.Name)
		case "rate-burst":
			cfg.RateLimit.Burst, err = flags.GetInt(f.Name)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid --%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// parseArguments builds tool arguments from an optional JSON object and key=value pairs.
// A value that is itself a JSON object, array, number or boolean is decoded; anything
// else is passed as a string.
func parseArguments(pairs []string, raw string) (map[string]any, error) {
	arguments := map[string]any{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &arguments); err != nil {
			return nil, fmt.Errorf("invalid --json arguments: %w", err)
		}
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q, expected key=value", pair)
		}

		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			if _, isString := decoded.(string); !isString && decoded != nil {
				arguments[key] = decoded
				continue
			}
		}
		arguments[key] = value
	}
	return arguments, nil
}
