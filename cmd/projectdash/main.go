// Command projectdash checks test campaign tables for scheduling and
// resource problems and serves the results over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"projectdash/internal/blob"
	"projectdash/internal/config"
	"projectdash/internal/core"
	"projectdash/internal/logging"
	"projectdash/pkg/domain"
)

// Exit codes.
const (
	exitOK        = 0
	exitError     = 1
	exitMalformed = 2
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrMalformedSchedule):
		return exitMalformed
	default:
		return exitError
	}
}

// app carries state shared by subcommands once the root pre-run has loaded
// configuration.
type app struct {
	configPath string
	logLevel   string
	noColor    bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "projectdash",
		Short:         "Consistency checks for test campaign tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Log.Level = a.logLevel
			}
			logger, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "projectdash.yaml", "path to the YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newCheckCmd(a),
		newFacilitiesCmd(a),
		newProjectsCmd(a),
		newTablesCmd(a),
		newServeCmd(a),
	)
	return root
}

// openService wires the configured project registry and table store.
func (a *app) openService(ctx context.Context, opts ...core.ServiceOption) (*core.Service, func(), error) {
	projects, err := core.OpenProjectStore(ctx, a.cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("open project store: %w", err)
	}
	store, err := blob.Open(ctx, a.cfg.Blob)
	if err != nil {
		_ = projects.Close()
		return nil, nil, fmt.Errorf("open table store: %w", err)
	}
	a.logger.Debug("service ready",
		zap.String("storage", string(a.cfg.Storage.Driver)),
		zap.String("blob", string(store.Driver())),
	)
	opts = append([]core.ServiceOption{core.WithLogger(a.logger)}, opts...)
	svc := core.NewService(projects, store, a.cfg.Policy, opts...)
	closeFn := func() {
		if err := projects.Close(); err != nil {
			a.logger.Warn("close project store", zap.Error(err))
		}
	}
	return svc, closeFn, nil
}

// color reports whether w is a terminal and color was not disabled.
func (a *app) color(w io.Writer) bool {
	if a.noColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
