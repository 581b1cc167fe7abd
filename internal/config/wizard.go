package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Wizard runs the interactive setup wizard and writes the config file.
// If reader is nil, reads from os.Stdin.
func Wizard(reader io.Reader) error {
	if reader == nil {
		reader = os.Stdin
	}
	scanner := bufio.NewScanner(reader)

	fmt.Println("stampkit Setup")
	fmt.Println()
	fmt.Println("Pick defaults for watermarking. Flags always override these.")
	fmt.Println()
	fmt.Println(strings.Repeat("-", 48))
	fmt.Println()

	// Step 1: Position
	fmt.Println("Step 1/3: Watermark position")
	fmt.Println("  [1] Center, rotated diagonally (recommended)")
	fmt.Println("  [2] Top-left corner")
	fmt.Println("  [3] Bottom-right corner")
	fmt.Print("  Choice: ")

	scanner.Scan()
	switch strings.TrimSpace(scanner.Text()) {
	case "2":
		viper.Set("position", "top-left")
	case "3":
		viper.Set("position", "bottom-right")
	default:
		viper.Set("position", "center")
	}
	fmt.Println()

	// Step 2: Opacity
	fmt.Println("Step 2/3: PDF watermark opacity (0.05 - 1.0)")
	fmt.Print("  Opacity (default 0.30): ")

	scanner.Scan()
	if v := strings.TrimSpace(scanner.Text()); v != "" {
		op, err := strconv.ParseFloat(v, 64)
		if err != nil || op <= 0 || op > 1 {
			fmt.Println("  Not a valid opacity, keeping 0.30")
		} else {
			viper.Set("opacity", op)
		}
	}
	fmt.Println()

	// Step 3: Unicode font
	fmt.Println("Step 3/3: TrueType font for non-Latin watermark text")
	fmt.Print("  Font file path (empty to auto-detect): ")

	scanner.Scan()
	if p := strings.TrimSpace(scanner.Text()); p != "" {
		if _, err := os.Stat(p); err != nil {
			fmt.Printf("  Warning: %s does not exist, saving anyway\n", p)
		}
		viper.Set("font.file", p)
	}
	fmt.Println()

	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("could not create %s: %w", Dir(), err)
	}
	if err := viper.WriteConfigAs(Path()); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}

	fmt.Printf("Saved %s\n", Path())
	return nil
}
