package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

var errFileRequired = errors.New("--file is required")

// inputFlags are shared by every command that reads a day file.
type inputFlags struct {
	file     string
	date     string
	output   string
	minGap   int
	dayStart string
	dayEnd   string
	rule     string
	step     int
	workers  int
}

func (f *inputFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.file, "file", "f", "", "Day file (.json, .yaml or .yml)")
	flags.StringVar(&f.date, "date", "", "Day to evaluate, YYYY-MM-DD")
	flags.StringVarP(&f.output, "output", "o", formatText, "Output format: text, json or yaml")
	flags.IntVar(&f.minGap, "min-gap", 0, "Minimum bookable gap in minutes (default 60)")
	flags.StringVar(&f.dayStart, "day-start", "", "Workday start, HH:MM (default 08:00)")
	flags.StringVar(&f.dayEnd, "day-end", "", "Workday end, HH:MM (default 18:00)")
	flags.StringVar(&f.rule, "rule", slotengine.RuleBoundary, "Classifier rule: boundary or gap_multiple")
	flags.IntVar(&f.step, "step", domain.DefaultStepMinutes, "Candidate grid step in minutes")
	flags.IntVar(&f.workers, "workers", 1, "Parallel workers for the swap search")
}

func (f *inputFlags) params() slotengine.Params {
	return slotengine.Params{
		MinGapMinutes: f.minGap,
		DayStart:      types.TimeString(f.dayStart),
		DayEnd:        types.TimeString(f.dayEnd),
	}
}

func (f *inputFlags) engine() (*slotengine.Engine, error) {
	classifier, err := slotengine.RuleByName(f.rule)
	if err != nil {
		return nil, err
	}
	return slotengine.NewEngine(slotengine.Options{
		Classifier:  classifier,
		StepMinutes: f.step,
		Workers:     f.workers,
	}), nil
}

// input is a loaded day file plus the way use cases should read it.
type input struct {
	schedule *fileSchedule
	date     time.Time
	bookings []domain.Booking // nil when the schedule is read by date
}

func (f *inputFlags) load() (*input, error) {
	if f.file == "" {
		return nil, errFileRequired
	}
	if err := validateFormat(f.output); err != nil {
		return nil, err
	}

	day, err := LoadDayFile(f.file)
	if err != nil {
		return nil, err
	}
	schedule, err := newFileSchedule(day)
	if err != nil {
		return nil, err
	}

	if f.date == "" {
		return &input{schedule: schedule, bookings: schedule.bookings}, nil
	}

	date, err := time.Parse(domain.DateFormat, f.date)
	if err != nil {
		return nil, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", f.date)
	}
	return &input{schedule: schedule, date: date}, nil
}
