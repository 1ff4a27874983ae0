package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/ansuz/internal"
	pkgconfig "github.com/starford/ansuz/pkg/config"
)

func serve(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(configPath, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func analyzeCmd(ctx context.Context, cmd *cli.Command) error {
	return internal.RunAnalyze(ctx, os.Stdout, internal.AnalyzeOptions{
		Dir:         cmd.String("dir"),
		File:        cmd.String("file"),
		Recursive:   cmd.Bool("recursive"),
		Format:      cmd.String("format"),
		Output:      cmd.String("output"),
		HistoryPath: cmd.String("history"),
		LintIssues:  int(cmd.Int("lint-issues")),
	})
}

func fixCmd(ctx context.Context, cmd *cli.Command) error {
	return internal.RunFix(ctx, os.Stdout, internal.FixOptions{
		Dir:       cmd.String("dir"),
		Recursive: cmd.Bool("recursive"),
		DryRun:    cmd.Bool("dry-run"),
	})
}

func historyCmd(ctx context.Context, cmd *cli.Command) error {
	return internal.RunHistory(ctx, os.Stdout, internal.HistoryOptions{
		Path:  cmd.String("history"),
		Limit: int(cmd.Int("limit")),
	})
}

func mcpCmd(ctx context.Context, cmd *cli.Command) error {
	return internal.RunMCP(ctx, cmd.String("dir"))
}

func main() {
	dirFlag := &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   "Documentation corpus root directory",
		Value:   "./docs",
	}
	recursiveFlag := &cli.BoolFlag{
		Name:  "recursive",
		Usage: "Scan subdirectories",
		Value: true,
	}
	historyFlag := &cli.StringFlag{
		Name:  "history",
		Usage: "Path to the health-history CSV",
		Value: "./doc-health-history.csv",
	}

	cmd := &cli.Command{
		Name:  "ansuz",
		Usage: "Documentation consistency and quality engine: reference graph, quality scoring, health trends",
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Analyze the corpus and render the health report",
				Action: analyzeCmd,
				Flags: []cli.Flag{
					dirFlag,
					&cli.StringFlag{
						Name:  "file",
						Usage: "Analyze a single markdown file instead of a directory",
					},
					recursiveFlag,
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, markdown, csv, or dot",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the report to a file instead of stdout",
					},
					&cli.StringFlag{
						Name:  "history",
						Usage: "Append this run to the health-history CSV at the given path",
					},
					&cli.IntFlag{
						Name:  "lint-issues",
						Usage: "Externally supplied markdown-lint issue count folded into the health score",
					},
				},
			},
			{
				Name:   "fix",
				Usage:  "Suggest and apply repairs for broken references with a unique basename match",
				Action: fixCmd,
				Flags: []cli.Flag{
					dirFlag,
					recursiveFlag,
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Print suggestions without writing",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "Show the recorded health trend",
				Action: historyCmd,
				Flags: []cli.Flag{
					historyFlag,
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Show only the most recent N runs",
						Value: 10,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the REST API with live re-analysis on file changes",
				Action: serve,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "config",
						Aliases:     []string{"c"},
						Usage:       "Path to config file",
						DefaultText: "config/config.yaml",
						Value:       "config/config.yaml",
						Sources:     cli.EnvVars("APP_CONFIG_FILE"),
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve analysis tools over MCP stdio",
				Action: mcpCmd,
				Flags:  []cli.Flag{dirFlag},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
