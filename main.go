package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"imagededuper/database"
	"imagededuper/dedupe"
	"imagededuper/imageprocessor"
	"imagededuper/logging"
	"imagededuper/scanner"
	"imagededuper/signalhandler"
	"imagededuper/utils"
)

func main() {
	// Set the optimal number of CPUs to use
	runtime.GOMAXPROCS(signalhandler.GetOptimalProcs())

	// Parse command line arguments into a map
	args := utils.ParseArguments()

	// Get the command (dedupe or sessions)
	command, hasCommand := args["command"]

	// Set default database path
	dbPath := utils.GetDefaultDatabasePath()
	if customDB, ok := args["database"]; ok && customDB != "" {
		dbPath = customDB
	} else if customDB, ok := args["db"]; ok && customDB != "" {
		// Allow --db as an alias for --database
		dbPath = customDB
	}

	// Setup debug logging if enabled
	debugMode := false
	if _, ok := args["debug"]; ok {
		debugMode = true
		logPath := "imagededuper.log"
		if customLogPath, ok := args["logfile"]; ok && customLogPath != "" {
			logPath = customLogPath
		}
		if err := logging.SetupLogger(logPath); err != nil {
			fmt.Printf("Warning: Failed to setup logging: %v\n", err)
		} else {
			fmt.Printf("Debug mode enabled. Logging to: %s\n", logPath)
			defer logging.CloseLogger()
		}
	}

	// Check if required arguments are missing
	showUsage := !hasCommand

	if hasCommand && command == "dedupe" && (args["source"] == "" || args["output"] == "") {
		showUsage = true
	}

	// Show usage if required arguments are missing
	if showUsage {
		utils.PrintUsage()
		os.Exit(1)
	}

	switch command {
	case "dedupe":
		handleDedupeCommand(args, dbPath, debugMode)
	case "sessions":
		handleSessionsCommand(dbPath)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		utils.PrintUsage()
		os.Exit(1)
	}
}

func handleDedupeCommand(args map[string]string, dbPath string, debugMode bool) {
	// Validate source directory before any work begins
	sourceDir := args["source"]
	sourceInfo, err := os.Stat(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Fatalf("Source directory does not exist: %s", sourceDir)
		}
		log.Fatalf("Cannot access source directory: %s (%v)", sourceDir, err)
	}
	if !sourceInfo.IsDir() {
		log.Fatalf("Source path is not a directory: %s", sourceDir)
	}

	// Validate output directory: it may not exist yet, but if it does
	// it has to be a directory.
	outputDir := args["output"]
	if outputInfo, err := os.Stat(outputDir); err == nil && !outputInfo.IsDir() {
		log.Fatalf("Output path is not a directory: %s", outputDir)
	}

	// Set custom threshold if provided
	threshold := imageprocessor.DefaultThreshold
	if thresholdStr, ok := args["threshold"]; ok {
		parsed, err := utils.ParseThreshold(thresholdStr, imageprocessor.DefaultThreshold)
		if err != nil {
			fmt.Printf("Warning: %v\n", err)
		}
		threshold = parsed
	}

	startTime := time.Now()

	// Initialize session database with retry logic
	var db *sql.DB
	const maxRetries = 3
	for i := 0; i < maxRetries; i++ {
		db, err = database.InitDatabase(dbPath)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			log.Printf("Error initializing database (attempt %d/%d): %v - retrying...",
				i+1, maxRetries, err)
			time.Sleep(time.Second * time.Duration(i+1))
		} else {
			log.Fatalf("Error initializing database after %d attempts: %v", maxRetries, err)
		}
	}
	defer db.Close()

	fmt.Printf("Starting dedupe run...\n")
	fmt.Printf("Source: %s\n", sourceDir)
	fmt.Printf("Output: %s\n", outputDir)
	fmt.Printf("Hash distance threshold: %d\n", threshold)
	fmt.Printf("Debug mode: %s\n", map[bool]string{true: "enabled", false: "disabled"}[debugMode])

	// Wire cooperative cancellation: first SIGINT stops the run between
	// files, second one exits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalhandler.SetupHandler(cancel)

	tracker := scanner.NewProgressTracker()
	defer tracker.Stop()

	options := dedupe.Options{
		SourceDir: sourceDir,
		OutputDir: outputDir,
		Threshold: threshold,
		DebugMode: debugMode,
		Logs:      tracker,
		Progress:  tracker,
	}

	summary, err := dedupe.Run(ctx, db, options)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nRun cancelled. Already-copied files are left in place.")
			return
		}
		log.Fatalf("Error running dedupe: %v", err)
	}

	// Print execution time and totals
	duration := time.Since(startTime)
	fmt.Printf("\nDedupe completed successfully!\n")
	fmt.Printf("Total execution time: %v\n", duration.Round(time.Millisecond))
	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Images scanned: %d\n", summary.TotalScanned)
	fmt.Printf("- Images kept: %d\n", summary.TotalKept)
	fmt.Printf("- Duplicates trashed: %d\n", summary.TotalDuplicates)
	fmt.Printf("- Output directory: %s\n", summary.OutputDirectory)
	fmt.Printf("- Trash directory: %s\n", summary.TrashDirectory)

	// Print cumulative statistics if available
	stats, err := database.GetSessionStats(db)
	if err == nil && stats != nil {
		fmt.Printf("\nSession database: %s\n", dbPath)
		fmt.Printf("- Recorded sessions: %d\n", stats.TotalSessions)
		fmt.Printf("- Recorded duplicate decisions: %d\n", stats.TotalDuplicates)
	}
}

func handleSessionsCommand(dbPath string) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		log.Fatalf("Session database does not exist: %s. Run dedupe command first.", dbPath)
	}

	db, err := database.OpenDatabase(dbPath)
	if err != nil {
		log.Fatalf("Error opening session database: %v", err)
	}
	defer db.Close()

	sessions, err := database.ListSessions(db)
	if err != nil {
		log.Fatalf("Error listing sessions: %v", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded.")
		return
	}

	fmt.Println("Recorded sessions:")
	for _, s := range sessions {
		fmt.Printf("%d. %s\n", s.ID, s.Timestamp)
		fmt.Printf("   Source: %s\n", s.SourceDirectory)
		fmt.Printf("   Scanned: %d, Kept: %d, Duplicates: %d\n",
			s.TotalScanned, s.TotalKept, s.TotalDuplicates)
	}
}
