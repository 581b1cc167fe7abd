// Package watch provides the "stamp watch" command: stamp documents as they
// appear under a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klytics/stampkit/internal/batch"
	"github.com/klytics/stampkit/internal/config"
	"github.com/klytics/stampkit/internal/stamp"
	"github.com/klytics/stampkit/internal/watch"
)

// NewCommand returns the watch subcommand.
func NewCommand() *cobra.Command {
	var (
		text        string
		outputDir   string
		overwrite   bool
		positionStr string
	)

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a directory and stamp new documents automatically",
		Long: `Monitors a directory tree and stamps every supported document that is
created or modified under it. Runs until interrupted.

Files this tool wrote itself (the _watermarked suffix, the output directory)
are skipped, so a watch pointed at its own output does not loop.

Examples:
  stamp watch -t "Received" ./inbox
  stamp watch -t "Received" -o ./stamped ./inbox`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("watermark text is required — pass -t/--text")
			}
			if outputDir != "" && overwrite {
				return fmt.Errorf("-o/--output and --overwrite are mutually exclusive")
			}

			dir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("could not resolve %s: %w", args[0], err)
			}
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				return fmt.Errorf("not a directory: %s", dir)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}

			opts := stamp.DefaultOptions()
			opts.Text = text
			opts.FontFile = cfg.Font.File
			if cfg.Opacity > 0 {
				opts.Opacity = cfg.Opacity
			}
			if cfg.FontSize > 0 {
				opts.FontSize = cfg.FontSize
			}
			posSrc := cfg.Position
			if cmd.Flags().Changed("position") {
				posSrc = positionStr
			}
			if pos, err := stamp.ParsePosition(posSrc); err == nil {
				opts.Position = pos
			}

			req := stamp.Request{
				Options:   opts,
				OutputDir: outputDir,
				Overwrite: overwrite,
			}

			runner := &batch.Runner{}
			handler := func(path string) error {
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					rel = filepath.Base(path)
				}
				res := runner.ProcessFile(path, rel, req)
				if res.Status != "ok" {
					return errors.New(res.Error)
				}
				return nil
			}

			w, err := watch.New([]string{dir}, handler)
			if err != nil {
				return err
			}
			if outputDir != "" {
				if abs, err := filepath.Abs(outputDir); err == nil {
					w.SkipDir = abs
				}
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "Watermark text (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write outputs under DIR, mirroring relative structure")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Write results back to the original file paths")
	cmd.Flags().StringVar(&positionStr, "position", "center", "Watermark position: center | top-left | bottom-right")

	return cmd
}
