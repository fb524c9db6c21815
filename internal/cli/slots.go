package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	findBestSlots "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/find_best_slots"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/metrics"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/ptr"
)

type slotsView struct {
	Date            string              `json:"date,omitempty" yaml:"date,omitempty"`
	DurationMinutes int                 `json:"durationMinutes" yaml:"durationMinutes"`
	EditedBookingID string              `json:"editedBookingId,omitempty" yaml:"editedBookingId,omitempty"`
	Therapists      []therapistSlotView `json:"therapists" yaml:"therapists"`
}

type therapistSlotView struct {
	TherapistID string            `json:"therapistId" yaml:"therapistId"`
	Strict      []string          `json:"strict" yaml:"strict"`
	Soft        []string          `json:"soft" yaml:"soft"`
	Bad         []string          `json:"bad" yaml:"bad"`
	BadReasons  map[string]string `json:"badReasons,omitempty" yaml:"badReasons,omitempty"`
}

func newSlotsCommand(root *rootOptions) *cobra.Command {
	var (
		in        inputFlags
		duration  int
		therapist  string
		edit       string
		candidates bool
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Classify start times for a new or moved booking",
		Example: `  slotctl slots -f day.yaml --duration 90
  slotctl slots -f day.json --date 2025-03-10 --therapist A --duration 60
  slotctl slots -f day.json --edit b2 -o json
  slotctl slots -f day.yaml --duration 60 --candidates`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := in.load()
			if err != nil {
				return err
			}
			engine, err := in.engine()
			if err != nil {
				return err
			}

			if candidates {
				view, err := listCandidates(cmd.Context(), loaded, engine, in.params(), duration, therapist)
				if err != nil {
					return err
				}
				if in.output == formatText {
					return writeCandidatesText(cmd.OutOrStdout(), view)
				}
				return writeStructured(cmd.OutOrStdout(), in.output, view)
			}

			log, closeLog, err := root.logger()
			if err != nil {
				return err
			}
			defer closeLog()

			req := &findBestSlots.Request{
				Date:     loaded.date,
				Bookings: loaded.bookings,
				Target:   slotTarget(duration, therapist, edit),
				Params:   in.params(),
			}

			var noMetrics *metrics.Metrics
			uc := findBestSlots.NewUseCase(loaded.schedule, engine, slotengine.DefaultParams(), noMetrics, log)
			resp, err := uc.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			view := toSlotsView(resp)
			if in.output == formatText {
				return writeSlotsText(cmd.OutOrStdout(), view)
			}
			return writeStructured(cmd.OutOrStdout(), in.output, view)
		},
	}

	in.register(cmd)
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "Session length in minutes")
	cmd.Flags().StringVarP(&therapist, "therapist", "t", "", "Only this therapist")
	cmd.Flags().StringVar(&edit, "edit", "", "Booking ID to move; --duration overrides its length")
	cmd.Flags().BoolVar(&candidates, "candidates", false, "List the unclassified candidate grid instead")
	cmd.MarkFlagsMutuallyExclusive("candidates", "edit")

	return cmd
}

func slotTarget(duration int, therapist, edit string) domain.SlotRequest {
	if edit != "" {
		return domain.EditBookingRequest{BookingID: edit, DurationMinutes: duration}
	}
	req := domain.NewSlotRequest{DurationMinutes: duration}
	if therapist != "" {
		req.TherapistID = ptr.Ptr(therapist)
	}
	return req
}

func toSlotsView(resp *findBestSlots.Response) slotsView {
	view := slotsView{
		DurationMinutes: resp.DurationMinutes,
		EditedBookingID: resp.EditedBookingID,
		Therapists:      make([]therapistSlotView, 0, len(resp.Therapists)),
	}
	if !resp.Date.IsZero() {
		view.Date = resp.Date.Format(domain.DateFormat)
	}

	for _, t := range resp.Therapists {
		tv := therapistSlotView{
			TherapistID: t.TherapistID,
			Strict:      append([]string{}, t.Slots.Strict...),
			Soft:        append([]string{}, t.Slots.Soft...),
			Bad:         append([]string{}, t.Slots.Bad...),
		}
		if len(t.Slots.BadReasons) > 0 {
			tv.BadReasons = t.Slots.BadReasons
		}
		view.Therapists = append(view.Therapists, tv)
	}
	return view
}

func writeSlotsText(w io.Writer, view slotsView) error {
	header := fmt.Sprintf("Duration: %d min", view.DurationMinutes)
	if view.Date != "" {
		header = view.Date + " | " + header
	}
	if view.EditedBookingID != "" {
		header += " | moving " + view.EditedBookingID
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	if len(view.Therapists) == 0 {
		_, err := fmt.Fprintln(w, "No therapists.")
		return err
	}

	for _, t := range view.Therapists {
		if _, err := fmt.Fprintf(w, "\nTherapist %s\n  strict: %s\n  soft:   %s\n  bad:    %s\n",
			t.TherapistID, joinOrDash(t.Strict), joinOrDash(t.Soft), joinOrDash(t.Bad)); err != nil {
			return err
		}
		for _, slot := range t.Bad {
			if _, err := fmt.Fprintf(w, "    %s  %s\n", slot, t.BadReasons[slot]); err != nil {
				return err
			}
		}
	}
	return nil
}
