package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/AndrewLester/clock/internal/ui"
	"github.com/AndrewLester/clock/pkg/clock"
)

const (
	actionGet  = "get"
	actionSet  = "set"
	actionSync = "sync"
)

const (
	standardRFC2822   = "rfc2822"
	standardRFC3339   = "rfc3339"
	standardTimestamp = "timestamp"
)

func main() {
	var action string
	var standard string
	var config string
	var timeout time.Duration
	var dryRun bool
	var compare bool
	var plain bool
	flag.StringVar(&action, "action", actionGet, "One of get, set or sync.")
	flag.StringVar(&standard, "standard", standardRFC3339, "Time format: rfc2822, rfc3339 or timestamp.")
	flag.StringVar(&standard, "s", standard, "Time format: rfc2822, rfc3339 or timestamp.")
	flag.StringVar(&config, "config", "", "Path to a YAML config listing NTP servers.")
	flag.DurationVar(&timeout, "timeout", 0, "Per-server timeout, overrides the config.")
	flag.BoolVar(&dryRun, "dry-run", false, "With sync, report the offset without setting the clock.")
	flag.BoolVar(&compare, "compare", false, "With sync, also query the first responding server with a reference client.")
	flag.BoolVar(&plain, "plain", false, "Don't show the interactive progress view.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [datetime]\n\nGets and sets the time. With -action set, datetime is applied.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := validateStandard(standard); err != nil {
		fail(err)
	}

	systemClock := clock.NewSystemClock()

	switch action {
	case actionGet:
		fmt.Println(formatTime(systemClock.Now(), standard))
	case actionSet:
		if flag.NArg() != 1 {
			fail(errors.New("set requires a datetime argument"))
		}
		t, err := parseTime(flag.Arg(0), standard)
		if err != nil {
			fail(err)
		}
		if err := clock.SetTime(systemClock, t); err != nil {
			fail(err)
		}
		fmt.Println(formatTime(systemClock.Now(), standard))
	case actionSync:
		cfg, err := clock.LoadConfig(config)
		if err != nil {
			fail(err)
		}
		if timeout > 0 {
			cfg.Timeout = timeout
		}
		handleSyncCommand(cfg, systemClock, syncOptions{
			standard: standard,
			dryRun:   dryRun,
			compare:  compare,
			plain:    plain,
		})
	default:
		fail(fmt.Errorf("unknown action %q", action))
	}
}

type syncOptions struct {
	standard string
	dryRun   bool
	compare  bool
	plain    bool
}

func handleSyncCommand(cfg *clock.Config, systemClock clock.SystemClock, options syncOptions) {
	servers := cfg.ResolveServers()
	querier := clock.NewQuerier(cfg)

	var estimate *clock.Estimate
	var err error
	if options.plain || !isTerminal(os.Stdout) {
		estimate, err = querier.Query(context.Background(), servers)
	} else {
		estimate, err = runQueryUI(querier, servers)
	}
	if estimate != nil {
		printResults(estimate)
	}
	if err != nil {
		fail(err)
	}

	offset := strconv.FormatFloat(estimate.Offset, 'G', 5, 64)
	fmt.Printf("offset: %s ms from %d of %d servers\n", offset, estimate.Used, len(estimate.Results))

	if options.compare {
		compareReference(cfg, estimate)
	}

	if options.dryRun {
		return
	}
	target, err := clock.ApplyOffset(systemClock, estimate.Offset)
	if err != nil {
		fail(err)
	}
	fmt.Println(formatTime(target, options.standard))
}

func printResults(estimate *clock.Estimate) {
	for _, result := range estimate.Results {
		if !result.OK() {
			fmt.Printf("%s %s: %v\n", ui.FailStyle("✗"), result.Server, result.Err)
			continue
		}
		rt := result.RoundTrip
		fmt.Printf("%s %s: delay %d ms, offset %d ms (ntp offset %s)\n",
			ui.OKStyle("✓"), result.Server, rt.Delay(), rt.Offset(), rt.ClockOffset())
	}
}

func compareReference(cfg *clock.Config, estimate *clock.Estimate) {
	for _, result := range estimate.Results {
		if !result.OK() {
			continue
		}
		reference, err := clock.Reference(result.Server, cfg.Port, cfg.Timeout)
		if err != nil {
			fmt.Printf("reference %s: %v\n", result.Server, err)
			return
		}
		fmt.Printf("reference %s: clock offset %s\n", result.Server, reference)
		return
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
