// Package cmd contains all CLI commands for the stamp binary.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/stampkit/cmd/completion"
	cmdconfig "github.com/klytics/stampkit/cmd/config"
	"github.com/klytics/stampkit/cmd/doctor"
	cmdprofile "github.com/klytics/stampkit/cmd/profile"
	"github.com/klytics/stampkit/cmd/version"
	cmdwatch "github.com/klytics/stampkit/cmd/watch"
	"github.com/klytics/stampkit/internal/batch"
	"github.com/klytics/stampkit/internal/config"
	"github.com/klytics/stampkit/internal/output"
	"github.com/klytics/stampkit/internal/profile"
	"github.com/klytics/stampkit/internal/stamp"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all
// subcommands registered. The root command itself is the stamping operation.
func NewRootCommand() *cobra.Command {
	var (
		text        string
		directory   string
		outputDir   string
		overwrite   bool
		positionStr string
		opacity     float64
		fontSize    int
		fontFile    string
		profileName string
	)

	rootCmd := &cobra.Command{
		Use:   "stamp [file]",
		Short: "Stamp a text watermark onto PDF, Word, and Excel documents",
		Long: `stampkit — text watermarks for documents.

Stamps watermark text onto .pdf, .docx, and .xlsx files, one at a time or
recursively over a directory tree. Results go to suffixed copies next to the
originals, to a mirrored output directory, or back onto the originals.

Examples:
  stamp -t "Confidential" report.pdf
  stamp -t "内部使用" -d ./documents
  stamp -t "Draft" -d ./docs -o ./stamped
  stamp -t "Do Not Distribute" -d ./docs --overwrite`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}

			opts := stamp.DefaultOptions()
			if p, err := stamp.ParsePosition(cfg.Position); err == nil {
				opts.Position = p
			}
			if cfg.Opacity > 0 {
				opts.Opacity = cfg.Opacity
			}
			if cfg.FontSize > 0 {
				opts.FontSize = cfg.FontSize
			}
			opts.FontFile = cfg.Font.File

			if profileName != "" {
				profs, err := profile.Load(profile.DefaultPath())
				if err != nil {
					return err
				}
				p, ok := profs.Get(profileName)
				if !ok {
					return fmt.Errorf("no profile named %q in %s", profileName, profile.DefaultPath())
				}
				if p.Text != "" {
					opts.Text = p.Text
				}
				if p.Position != "" {
					pos, err := stamp.ParsePosition(p.Position)
					if err != nil {
						return fmt.Errorf("profile %q: %w", p.Name, err)
					}
					opts.Position = pos
				}
				if p.Opacity != nil {
					opts.Opacity = *p.Opacity
				}
				if p.FontSize != nil {
					opts.FontSize = *p.FontSize
				}
			}

			// Explicit flags win over config and profile.
			if cmd.Flags().Changed("text") {
				opts.Text = text
			}
			if cmd.Flags().Changed("position") {
				pos, err := stamp.ParsePosition(positionStr)
				if err != nil {
					return err
				}
				opts.Position = pos
			}
			if cmd.Flags().Changed("opacity") {
				opts.Opacity = opacity
			}
			if cmd.Flags().Changed("font-size") {
				opts.FontSize = fontSize
			}
			if cmd.Flags().Changed("font") {
				opts.FontFile = fontFile
			}

			// All validation happens before any file is touched.
			if strings.TrimSpace(opts.Text) == "" {
				return fmt.Errorf("watermark text is required — pass -t/--text or a --profile that sets text")
			}

			var source string
			if len(args) == 1 {
				source = args[0]
			}
			if source == "" && directory == "" {
				return fmt.Errorf("nothing to do — pass a file or -d/--directory\n\nExamples:\n  stamp -t \"Confidential\" report.pdf\n  stamp -t \"Confidential\" -d ./documents -o ./stamped")
			}
			if source != "" && directory != "" {
				return fmt.Errorf("pass either a file or -d/--directory, not both")
			}
			if outputDir != "" && overwrite {
				return fmt.Errorf("-o/--output and --overwrite are mutually exclusive")
			}

			target := source
			if directory != "" {
				target = directory
			}
			if _, err := os.Stat(target); err != nil {
				return fmt.Errorf("path does not exist: %s", target)
			}

			req := stamp.Request{
				Options:   opts,
				Source:    source,
				Directory: directory,
				OutputDir: outputDir,
				Overwrite: overwrite,
			}

			runner := &batch.Runner{Verbose: verbose}
			summary, err := runner.Run(req)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := output.NewWriter().WriteJSON(summary); err != nil {
					return err
				}
			} else {
				printSummary(summary, directory != "", directory)
			}

			if summary.Failed > 0 {
				return fmt.Errorf("%d file(s) failed", summary.Failed)
			}
			return nil
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print per-file progress lines")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	rootCmd.Flags().StringVarP(&text, "text", "t", "", "Watermark text (required)")
	rootCmd.Flags().StringVarP(&directory, "directory", "d", "", "Process all supported files under DIR recursively")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write outputs under DIR, mirroring relative structure")
	rootCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Write results back to the original file paths")
	rootCmd.Flags().StringVar(&positionStr, "position", "center", "Watermark position: center | top-left | bottom-right")
	rootCmd.Flags().Float64Var(&opacity, "opacity", 0.30, "PDF watermark opacity (0-1]")
	rootCmd.Flags().IntVar(&fontSize, "font-size", 30, "PDF watermark font size in points")
	rootCmd.Flags().StringVar(&fontFile, "font", "", "TrueType font file for non-Latin watermark text")
	rootCmd.Flags().StringVar(&profileName, "profile", "", "Apply a named preset from the profiles file")

	// Register subcommands
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdprofile.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(doctor.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

func printSummary(s *batch.Summary, batchMode bool, root string) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, r := range s.Results {
		if r.Status == "ok" {
			fmt.Printf("%s %s → %s\n", green("✓"), r.File, r.Output)
		} else {
			fmt.Printf("%s %s\n", red("✗"), r.File)
		}
	}

	if batchMode {
		if len(s.Results) == 0 {
			fmt.Printf("No supported documents found under %s\n", root)
			return
		}
		fmt.Printf("\nDone: %d succeeded, %d failed\n", s.Succeeded, s.Failed)
	}
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
