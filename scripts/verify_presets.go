package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"skydeck/services/apod"
	"skydeck/services/solar"
)

// Fetches every preset event date from the live APOD API and reports labels
// whose stored title no longer matches the archive. Run after editing the
// preset list.
func main() {
	apiKey := os.Getenv("NASA_API_KEY")
	if apiKey == "" {
		log.Printf("NASA_API_KEY not set, using DEMO_KEY (may hit the hourly quota)")
		apiKey = "DEMO_KEY"
	}

	// The exclusion list needs no network, so check it first.
	for _, d := range solar.NewClassifier(nil).ExcludedDates() {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			log.Fatalf("Exclusion date %q does not parse: %v", d, err)
		}
	}

	client := apod.NewClient(apiKey, "", nil)
	ctx := context.Background()

	mismatches := 0
	for _, ev := range apod.Events() {
		entry, err := client.Fetch(ctx, apod.DateSelection{Date: ev.Date})
		if err != nil {
			log.Printf("⚠ %s: fetch failed: %v", ev.Date, err)
			mismatches++
			continue
		}

		// Labels are "<title> (<date>)", so the archive title should be a
		// prefix of the label.
		if strings.HasPrefix(ev.Label, entry.Title) {
			log.Printf("✓ %s: %s", ev.Date, entry.Title)
		} else {
			log.Printf("⚠ %s: label %q but archive title is %q", ev.Date, ev.Label, entry.Title)
			mismatches++
		}

		// Small delay to avoid rate limiting
		time.Sleep(time.Second)
	}

	if mismatches > 0 {
		log.Fatalf("%d preset(s) need attention", mismatches)
	}
	log.Printf("All %d presets verified", len(apod.Events()))
}
