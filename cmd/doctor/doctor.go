// Package doctor provides the "stamp doctor" command for checking system health.
package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/stampkit/internal/config"
	"github.com/klytics/stampkit/internal/formats/pdf"
	"github.com/klytics/stampkit/internal/profile"
)

// Check represents a single health check result.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message"`
}

// NewCommand creates the "doctor" command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check system health and dependencies",
		Long:  "Run diagnostic checks to verify stampkit is properly configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := runChecks()

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(checks)
			}

			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			fmt.Println("stampkit Doctor")
			fmt.Println("===============")
			fmt.Println()

			okCount, warnCount, errCount := 0, 0, 0
			for _, c := range checks {
				var icon string
				switch c.Status {
				case "ok":
					icon = green("✓")
					okCount++
				case "warning":
					icon = yellow("!")
					warnCount++
				case "error":
					icon = red("✗")
					errCount++
				}
				fmt.Printf("  %s %s: %s\n", icon, c.Name, c.Message)
			}

			fmt.Println()
			fmt.Printf("  %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

			if errCount > 0 {
				return fmt.Errorf("%d check(s) failed", errCount)
			}
			return nil
		},
	}
}

func runChecks() []Check {
	var checks []Check

	checks = append(checks, Check{
		Name:    "Go Runtime",
		Status:  "ok",
		Message: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	})

	checks = append(checks, Check{
		Name:    "Formats",
		Status:  "ok",
		Message: ".pdf (pdfcpu), .docx (OOXML headers), .xlsx (excelize)",
	})

	// Config directory
	if info, err := os.Stat(config.Dir()); err == nil && info.IsDir() {
		checks = append(checks, Check{
			Name:    "Config Directory",
			Status:  "ok",
			Message: config.Dir(),
		})
	} else {
		checks = append(checks, Check{
			Name:    "Config Directory",
			Status:  "warning",
			Message: fmt.Sprintf("%s not found — run 'stamp config init'", config.Dir()),
		})
	}

	// Profiles file
	if _, err := os.Stat(profile.DefaultPath()); err == nil {
		checks = append(checks, Check{
			Name:    "Profiles",
			Status:  "ok",
			Message: profile.DefaultPath(),
		})
	} else {
		checks = append(checks, Check{
			Name:    "Profiles",
			Status:  "warning",
			Message: fmt.Sprintf("%s not found — --profile will be unavailable", profile.DefaultPath()),
		})
	}

	// CJK-capable font, needed for non-Latin PDF watermarks
	if path, ok := pdf.LookupFontFile(); ok {
		checks = append(checks, Check{
			Name:    "Unicode Font",
			Status:  "ok",
			Message: path,
		})
	} else {
		checks = append(checks, Check{
			Name:    "Unicode Font",
			Status:  "warning",
			Message: "no CJK-capable font found — non-Latin PDF watermarks will fail (install Noto Sans CJK or set --font)",
		})
	}

	return checks
}
