package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rhyrak/lecture-scheduler/internal/config"
	"github.com/rhyrak/lecture-scheduler/internal/csvio"
	"github.com/rhyrak/lecture-scheduler/internal/logger"
	"github.com/rhyrak/lecture-scheduler/internal/scheduler"
	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

func main() {
	flags := config.Flags("lecture-scheduler")
	quiet := flags.BoolP("quiet", "q", false, "do not print the schedule")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log, !*quiet); err != nil {
		log.Error("scheduling failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger, print bool) error {
	sessions, err := csvio.LoadSessionsFile(cfg.Input.SessionsFile, cfg.Delim())
	if err != nil {
		return err
	}

	var rooms []*model.Room
	if _, err := os.Stat(cfg.Input.RoomsFile); err == nil {
		if rooms, err = csvio.LoadRoomsFile(cfg.Input.RoomsFile, cfg.Delim()); err != nil {
			return err
		}
	} else {
		log.Info("room inventory not found, using default rooms", zap.String("path", cfg.Input.RoomsFile))
		rooms = model.DefaultRooms()
	}

	prefsPath := cfg.Input.PreferencesFile
	if _, err := os.Stat(prefsPath); err != nil {
		prefsPath = ""
	}
	prefs, err := config.LoadRoomPreferences(prefsPath)
	if err != nil {
		return err
	}

	log.Info("loaded inputs",
		zap.Int("sessions", len(sessions)),
		zap.Int("rooms", len(rooms)),
		zap.Int("preferences", len(prefs)),
	)

	policy := scheduler.NewDefaultConfiguration()
	allocator := scheduler.NewAllocator(policy, scheduler.NewRoomIndex(rooms, prefs), log, nil)

	start := time.Now()
	schedule := allocator.Allocate(sessions)
	elapsed := time.Since(start)

	written, err := csvio.ExportViews(schedule, cfg.Export.Dir, cfg.Export.PDF)
	if err != nil {
		return err
	}

	if print {
		csvio.PrintSchedule(os.Stdout, schedule)
	}

	valid, msg := scheduler.Validate(schedule, allocator.Calendar(), policy)
	if !valid {
		fmt.Println("Invalid schedule:")
	} else {
		fmt.Println("Passed all tests")
	}
	fmt.Println(msg)

	if len(schedule.Warnings) != 0 {
		fmt.Println("Ignored availability constraints:")
		for _, w := range schedule.Warnings {
			fmt.Println("  " + w)
		}
		fmt.Println()
	}

	fmt.Printf("Scheduled: %d\n", schedule.Count(model.OutcomeScheduled))
	fmt.Printf("Overflow (ONLINE): %d\n", schedule.Count(model.OutcomeOverflow))
	fmt.Printf("Fallback (ONLINE): %d\n", schedule.Count(model.OutcomeFallback))
	fmt.Printf("Timer: %f ms\n", float64(elapsed.Nanoseconds())/1000000.0)
	fmt.Printf("Exported %d files to: %s\n", len(written), cfg.Export.Dir)
	return nil
}
