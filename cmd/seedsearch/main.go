// Command seedsearch runs a filter over a seed interval from the command
// line, fanning out across workers and printing matches as they arrive.
//
// Usage:
//
//	seedsearch -filter filter.json -lo 0 -hi 100000000 -version 1.6 -workers 8
//	seedsearch -filter-json '{"logic":"and","conditions":[...]}' -lo 0 -hi 1000000
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"valley-oracle/pkg/jobs"
	"valley-oracle/pkg/version"
)

func main() {
	var (
		filterPath = flag.String("filter", "", "path to a filter JSON file")
		filterJSON = flag.String("filter-json", "", "inline filter JSON (overrides -filter)")
		seedLo     = flag.Int64("lo", 0, "first seed of the interval")
		seedHi     = flag.Int64("hi", 1_000_000, "last seed of the interval (inclusive)")
		gameVer    = flag.String("version", "1.6", "game version (1.3, 1.4, 1.5, 1.5.3, 1.6)")
		maxResults = flag.Int("max", 100, "stop after this many matches (0 = unlimited)")
		workers    = flag.Int("workers", runtime.NumCPU(), "parallel search workers")
		quiet      = flag.Bool("quiet", false, "suppress the progress bar")
	)
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logrus.WarnLevel)

	filter, err := loadFilter(*filterPath, *filterJSON)
	if err != nil {
		logrus.WithError(err).Fatal("cannot load filter")
	}

	v, err := version.Parse(*gameVer)
	if err != nil {
		logrus.WithError(err).Fatal("bad -version")
	}
	if *seedLo < -2147483648 || *seedHi > 2147483647 || *seedLo > *seedHi {
		logrus.Fatalf("seed interval [%d, %d] is not a valid int32 range", *seedLo, *seedHi)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\ninterrupted, draining workers")
		cancel()
	}()

	span := *seedHi - *seedLo + 1
	var bar *progressbar.ProgressBar
	if !*quiet {
		bar = progressbar.NewOptions64(
			span,
			progressbar.OptionSetElapsedTime(true),
			progressbar.OptionSetItsString("seed"),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetWriter(os.Stderr),
		)
	}

	var lastChecked atomic.Int64

	coordinator := jobs.NewCoordinator(logrus.StandardLogger())
	summary, err := coordinator.Run(ctx, jobs.Request{
		FilterJSON: filter,
		SeedLo:     int32(*seedLo),
		SeedHi:     int32(*seedHi),
		MaxResults: *maxResults,
		Version:    v,
		Workers:    *workers,
		OnProgress: func(checked, found int64) {
			if bar != nil {
				prev := lastChecked.Swap(checked)
				if checked > prev {
					_ = bar.Add64(checked - prev)
				}
			}
		},
		OnMatch: func(seed int32) {
			if bar != nil {
				_ = bar.Clear()
			}
			fmt.Printf("%d\n", seed)
		},
	})
	if err != nil {
		logrus.WithError(err).Fatal("search failed")
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	fmt.Fprintf(os.Stderr, "checked %d seeds, %d matched (%s)\n",
		summary.Checked, summary.Found, summary.State)
}

func loadFilter(path, inline string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}
	if path == "" {
		return nil, fmt.Errorf("one of -filter or -filter-json is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
