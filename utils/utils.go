package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseArguments converts command-line arguments into a map of flags and values
func ParseArguments() map[string]string {
	args := make(map[string]string)

	// First, identify the command (dedupe/sessions)
	command := ""
	commandIndex := -1
	for i := 1; i < len(os.Args); i++ {
		if os.Args[i] == "dedupe" || os.Args[i] == "sessions" {
			command = os.Args[i]
			commandIndex = i
			break
		}
	}

	if command != "" {
		args["command"] = command
	}

	// Process all arguments, skipping the command
	for i := 1; i < len(os.Args); i++ {
		if i == commandIndex {
			continue
		}

		arg := os.Args[i]

		// Handle flags with equals sign (--key=value)
		if strings.HasPrefix(arg, "--") && strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			flagName := strings.TrimPrefix(parts[0], "--")
			args[flagName] = parts[1]
			continue
		}

		// Handle flags without equals sign (--key value)
		if strings.HasPrefix(arg, "--") {
			flagName := strings.TrimPrefix(arg, "--")

			// Check if this is a boolean flag (no value)
			if i+1 >= len(os.Args) || strings.HasPrefix(os.Args[i+1], "--") {
				args[flagName] = "true"
			} else {
				// The next argument is the value
				args[flagName] = os.Args[i+1]
				i++ // Skip the value in the next iteration
			}
		}
	}

	return args
}

// GetDefaultDatabasePath returns the default path for the session database file
func GetDefaultDatabasePath() string {
	// Get the executable path
	exePath, err := os.Executable()
	if err != nil {
		// Fallback to current directory if executable path can't be determined
		return "dedupe_sessions.db"
	}

	// Return the default database path in the same directory as the executable
	return filepath.Join(filepath.Dir(exePath), "dedupe_sessions.db")
}

// PrintUsage outputs the command-line usage instructions
func PrintUsage() {
	fmt.Printf("Usage:\n")
	fmt.Printf("  %s dedupe --source=PATH --output=PATH [--threshold=N] [--database=PATH] [--debug] [--logfile=PATH]\n", os.Args[0])
	fmt.Printf("  %s sessions [--database=PATH]\n", os.Args[0])
	fmt.Printf("\nParameters:\n")
	fmt.Printf("  --source      : Path to folder containing images to deduplicate\n")
	fmt.Printf("  --output      : Path to output folder (kept images, trash/, logs)\n")
	fmt.Printf("  --threshold   : Max Hamming distance treated as duplicate (0-64, default: 5)\n")
	fmt.Printf("  --database    : Path to session database file (default: %s)\n", GetDefaultDatabasePath())
	fmt.Printf("  --debug       : Enable debug mode (logs detailed information)\n")
	fmt.Printf("  --logfile     : Specify custom log file path (default: imagededuper.log)\n")
	fmt.Printf("\nExamples:\n")
	fmt.Printf("  %s dedupe --source=/path/to/photos --output=/path/to/clean --threshold=5\n", os.Args[0])
	fmt.Printf("  %s sessions --database=/path/to/dedupe_sessions.db\n", os.Args[0])
}

// ParseThreshold parses and validates the Hamming distance threshold from string
func ParseThreshold(thresholdStr string, defaultThreshold int) (int, error) {
	parsed, err := strconv.Atoi(thresholdStr)
	if err != nil || parsed < 0 || parsed > 64 {
		return defaultThreshold, fmt.Errorf("invalid threshold value '%s', using default (%d)", thresholdStr, defaultThreshold)
	}
	return parsed, nil
}
