package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/rtps/schema"
)

// Class status label constants.
const (
	CompleteValue = "Complete" // Every point is plottable
	PartialValue  = "Partial"  // Some points cannot be placed on log axes
	EmptyValue    = "Empty"    // No plottable points
)

// Color variables for console output.
var (
	CompleteColor = color.New(color.FgGreen)            // completeColor represents a fully plottable class.
	PartialColor  = color.New(color.FgYellow)           // partialColor represents standard caution, not bold.
	EmptyColor    = color.New(color.FgRed, color.Bold)  // emptyColor represents a class that draws nothing.
	HeaderColor   = color.New(color.FgCyan, color.Bold) // headerColor highlights section titles.
)

// GetPlainLabel returns a plain text label describing how much of a class
// can be drawn. This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(s schema.ClassSummary) string {
	switch {
	case s.Points-s.Skipped <= 0:
		return EmptyValue
	case s.Skipped > 0:
		return PartialValue
	default:
		return CompleteValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(s schema.ClassSummary) string {
	text := GetPlainLabel(s)

	switch text {
	case EmptyValue:
		return EmptyColor.Sprint(text)
	case PartialValue:
		return PartialColor.Sprint(text)
	default:
		return CompleteColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// FormatSci formats a value in scientific notation with the given precision.
// NaN, which marks an empty range, is rendered as "-".
func FormatSci(v float64, precision int) string {
	if v != v {
		return "-"
	}
	return fmt.Sprintf("%.*e", precision, v)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
