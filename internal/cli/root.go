// Package cli provides the slotctl command-line interface: the slot engine run against a day file.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SlotOptimizer/pkg/logger"
)

// Logger is the printf-style logger the use cases expect.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type rootOptions struct {
	verbose bool
}

// logger returns a debug logger on stdout when --verbose is set, a no-op logger otherwise.
func (o *rootOptions) logger() (Logger, func(), error) {
	if !o.verbose {
		return logger.NewNop(), func() {}, nil
	}
	log, err := logger.New("", "debug")
	if err != nil {
		return nil, nil, err
	}
	return log, log.Close, nil
}

// NewRootCommand creates the slotctl root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "slotctl",
		Short: "Classify appointment slots and propose booking swaps offline",
		Long: `slotctl runs the slot engine against a day file (JSON or YAML) holding
a therapist roster and their bookings.

Without --date every booking in the file is used as one workday.
With --date only bookings of that day (and undated ones) are used, and
therapists who are off on that weekday are skipped.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log engine activity to stdout")

	root.AddCommand(
		newSlotsCommand(opts),
		newSwapsCommand(opts),
	)

	return root
}
