// Package profile provides CLI commands for watermark presets.
package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/stampkit/internal/profile"
)

// NewCommand returns the profile command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage watermark presets",
		Long: `Presets live in ` + "`~/.stampkit/profiles.yaml`" + `:

  profiles:
    - name: confidential
      text: Confidential
      position: center
      opacity: 0.25
    - name: draft
      text: DRAFT
      position: top-left

Apply one with: stamp --profile confidential report.pdf`,
	}

	cmd.AddCommand(newListCommand())

	return cmd
}

func newListCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List defined watermark presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = profile.DefaultPath()
			}

			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Printf("No profiles file at %s\n", path)
				return nil
			}

			f, err := profile.Load(path)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(f.Profiles)
			}

			bold := color.New(color.Bold).SprintFunc()
			for _, p := range f.Profiles {
				fmt.Printf("%s\n", bold(p.Name))
				if p.Text != "" {
					fmt.Printf("  text:     %s\n", p.Text)
				}
				if p.Position != "" {
					fmt.Printf("  position: %s\n", p.Position)
				}
				if p.Opacity != nil {
					fmt.Printf("  opacity:  %.2f\n", *p.Opacity)
				}
				if p.FontSize != nil {
					fmt.Printf("  size:     %d\n", *p.FontSize)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "Profiles file (default ~/.stampkit/profiles.yaml)")

	return cmd
}
