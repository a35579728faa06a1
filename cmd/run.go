package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spaghettifunk/walkthedog/engine"
	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/platform/headless"
	"github.com/spaghettifunk/walkthedog/internal/app"
)

type runOptions struct {
	assetsDir string
	frames    uint64
	out       string
	workers   int
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the game on the headless host",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := engine.LoadApplicationConfig(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			config.LogLevel = logLevel
		}
		if runOpts.assetsDir != "" {
			config.AssetsDir = runOpts.assetsDir
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		defer stop()
		return runHeadless(ctx, config, runOpts)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOpts.assetsDir, "assets", "a", "", "directory resources are loaded from, overrides the configuration")
	runCmd.Flags().Uint64VarP(&runOpts.frames, "frames", "n", 0, "stop after this many animation frames (0 runs until interrupted)")
	runCmd.Flags().StringVarP(&runOpts.out, "out", "o", "", "write the final canvas to this PNG file")
	runCmd.Flags().IntVar(&runOpts.workers, "workers", 0, "asset decoding workers (0 uses the number of CPUs)")
	rootCmd.AddCommand(runCmd)
}

func runHeadless(ctx context.Context, config *engine.ApplicationConfig, opts runOptions) (err error) {
	host, err := headless.New(headless.Config{
		AssetsDir: config.AssetsDir,
		CanvasID:  config.CanvasID,
		Width:     config.Width,
		Height:    config.Height,
		FrameRate: config.FrameRate,
		Workers:   opts.workers,
	})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, host.Close())
	}()

	a, err := app.New(config, host)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	hostErr := make(chan error, 1)
	go func() {
		hostErr <- host.Run(ctx)
	}()

	err = a.Run(ctx, opts.frames)
	cancel()
	if herr := <-hostErr; herr != nil && !errors.Is(herr, context.Canceled) {
		err = errors.Join(err, herr)
	}
	if err != nil {
		return err
	}

	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		if err := host.Canvas().WritePNG(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		core.LogInfo("canvas written to %s", opts.out)
	}
	return nil
}
