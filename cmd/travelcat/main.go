package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"travelcat/internal/batch"
	"travelcat/internal/ingest"
	"travelcat/internal/query"
)

// main is the entry point for the travelcat binary. It ingests the datasets,
// builds the catalog, and runs the command file against it, one output file
// per command. Paths come from flags, with .env / environment fallbacks.
func main() {
	// Optional .env in the working directory; absence is not an error.
	_ = godotenv.Load()

	var (
		datasetDir   string
		commandsPath string
		outputDir    string
		checksum     bool
	)

	flag.StringVar(&datasetDir, "datasets", envOr("TRAVELCAT_DATASETS", "dataset"), "directory with the four dataset files")
	flag.StringVar(&commandsPath, "commands", envOr("TRAVELCAT_COMMANDS", "commands.txt"), "query command file")
	flag.StringVar(&outputDir, "output", envOr("TRAVELCAT_OUTPUT", "Resultados"), "directory for query outputs and error files")
	flag.BoolVar(&checksum, "checksum", false, "log the catalog content checksum after ingestion")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fatalf("create output dir: %v", err)
	}

	start := time.Now()
	cat, sum, err := ingest.Run(ingest.Options{DatasetDir: datasetDir, OutputDir: outputDir})
	if err != nil {
		fatalf("ingest: %v", err)
	}
	if *verbose {
		log.Printf("ingest: accounts=%d/%d reservations=%d/%d flights=%d/%d seats=%d/%d (committed/rejected) in %s",
			sum.Accounts.Committed, sum.Accounts.Rejected,
			sum.Reservations.Committed, sum.Reservations.Rejected,
			sum.Flights.Committed, sum.Flights.Rejected,
			sum.Seats.Committed, sum.Seats.Rejected,
			time.Since(start).Truncate(time.Millisecond))
	}
	if checksum {
		log.Printf("catalog checksum: %016x", cat.Checksum())
	}

	runner := &batch.Runner{Engine: query.New(cat), OutputDir: outputDir}
	if err := runner.Run(context.Background(), commandsPath); err != nil {
		fatalf("batch: %v", err)
	}
	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
