package main

import (
	"flag"
	"fmt"
	"os"

	"hdstats/process/reparse"
)

func main() {
	profileID := flag.Uint("profile-id", 0, "profile to reparse (0 = all active profiles)")
	dry := flag.Bool("dry-run", true, "dry-run: don't write to DB")
	flag.Parse()

	if os.Getenv("DB_DSN") == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN not set; export and retry")
		os.Exit(2)
	}

	if err := reparse.Run(*profileID, *dry); err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}
}
