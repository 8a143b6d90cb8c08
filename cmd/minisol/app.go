package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/brojonat/minisol/service/config"
	"github.com/brojonat/minisol/service/metrics"
	"github.com/brojonat/minisol/service/solana"
	"github.com/urfave/cli/v2"
)

// dialFunc constructs the RPC handle for a cluster. Tests swap it for a mock.
type dialFunc func(cluster solana.Cluster, timeout time.Duration) solana.RPCClient

// session holds the per-invocation state built by the Before hook and
// shared by every command action.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	client  *solana.Client
}

// newApp wires the CLI. Command output goes to stdout, usage errors and
// logs go to stderr. A nil dial uses the real solana-go client.
func newApp(stdout, stderr io.Writer, dial dialFunc) *cli.App {
	if dial == nil {
		dial = solana.NewRPCClient
	}
	defaults := config.Default()
	s := &session{}

	return &cli.App{
		Name:  "minisol",
		Usage: "Mini Solana CLI for blockchain interactions",
		Description: `Generate keypairs, inspect balances, request devnet airdrops and send SOL.

Identity arguments (--key, --to) accept either a path to a keypair file or a
base58 public key. An existing path always wins.`,
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			createCommand(s),
			addressCommand(s),
			balanceCommand(s),
			airdropCommand(s),
			sendCommand(s),
			versionCommand(),
		},
		// Global flags available to all commands
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "cluster",
				Aliases: []string{"c"},
				Usage:   "Cluster to talk to: " + solana.ClusterNames(),
				Value:   defaults.Cluster.String(),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-request RPC timeout",
				Value: defaults.RequestTimeout,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Diagnostic log level: debug, info, warn or error",
				Value: defaults.LogLevel,
			},
			&cli.StringFlag{
				Name:  "metrics-textfile",
				Usage: "Write Prometheus metrics for this run to `PATH` on exit",
			},
			&cli.BoolFlag{
				Name:  "no-banner",
				Usage: "Do not print the banner",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(config.Flags{
				Cluster:         c.String("cluster"),
				Timeout:         c.Duration("timeout"),
				LogLevel:        c.String("log-level"),
				MetricsTextfile: c.String("metrics-textfile"),
				NoBanner:        c.Bool("no-banner"),
			})
			if err != nil {
				return err
			}
			level, _ := config.ParseLogLevel(cfg.LogLevel)

			s.cfg = cfg
			s.logger = setupLogger(level, stderr)
			s.metrics = metrics.NewMetrics(nil)
			s.client = solana.NewClient(dial(cfg.Cluster, cfg.RequestTimeout), cfg.Cluster, s.metrics, s.logger)

			s.logger.Debug("invocation configured",
				"cluster", cfg.Cluster.String(),
				"rpc_url", cfg.Cluster.URL(),
				"timeout", cfg.RequestTimeout,
			)

			if cfg.ShowBanner {
				printBanner(stdout, cfg.Cluster)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if s.cfg == nil || s.cfg.MetricsTextfile == "" {
				return nil
			}
			if err := s.metrics.WriteTextfile(s.cfg.MetricsTextfile); err != nil {
				return fmt.Errorf("failed to write metrics textfile: %w", err)
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return fmt.Errorf("unknown command %q", c.Args().First())
			}
			_ = cli.ShowAppHelp(c)
			return fmt.Errorf("a command is required")
		},
	}
}

// instrument wraps a command action with outcome metrics.
func instrument(s *session, name string, action cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		return s.metrics.InstrumentCommand(name, func() error {
			return action(c)
		})
	}
}
