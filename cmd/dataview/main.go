package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/dataview/internal/backend"
	"github.com/tinytelemetry/dataview/internal/logging"
	"github.com/tinytelemetry/dataview/internal/model"
	"github.com/tinytelemetry/dataview/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var configPath string
	var endpoint string
	var skin string
	var noTUI bool
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/dataview/config.yml)")
	flag.StringVar(&endpoint, "endpoint", "", "override the backend endpoint")
	flag.StringVar(&skin, "skin", "", "override the skin ("+strings.Join(tui.SkinNames(), "|")+")")
	flag.BoolVar(&noTUI, "no-tui", false, "print the settled view without a terminal UI")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "dataview [--config FILE] [--endpoint URL] [--skin NAME] [--no-tui] | config | --version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("dataview %s (commit %s, built %s)\n", version, commit, buildTime)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if skin != "" {
		cfg.Skin = skin
	}

	if args := flag.Args(); len(args) > 0 {
		switch args[0] {
		case "config":
			if err := printConfig(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		default:
			flag.Usage()
			os.Exit(2)
		}
	}

	if err := run(cfg, noTUI); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg cliConfig, noTUI bool) error {
	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := backend.NewClient(cfg.Endpoint)
	view := tui.NewDataView(ctx, client, model.ResolveConfigValue(cfg.ArgVar), logger, tui.LoadTheme(cfg.Skin, logger))
	logger.Info("starting dataview",
		zap.String("version", version),
		zap.String("endpoint", cfg.Endpoint),
		zap.Bool("tui", !noTUI),
	)

	if noTUI {
		fmt.Print(tui.RenderSettled(view))
		return nil
	}
	return tui.Run(ctx, view)
}

// printConfig writes the effective configuration as YAML.
func printConfig(cfg cliConfig) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
