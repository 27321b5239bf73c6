package outwriter

import (
	"os"

	"github.com/huangsam/rtps/internal/contract"
	"golang.org/x/term"
)

// GetMaxTablePathWidth calculates the maximum width for table paths in table output
// based on terminal width and the fixed class summary columns.
func GetMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Class + Points + Skipped + Status with borders/padding
	baseWidth := 45

	// Four range columns in scientific notation
	baseWidth += 4 * (cfg.Precision + 9)

	// Reserve space for table borders, separators, and padding
	baseWidth += 20

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
