package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// ErrInvalidDayFile is returned when a day file cannot be decoded or holds bad values.
var ErrInvalidDayFile = errors.New("cli: invalid day file")

// DayFile is the on-disk schedule consumed by slotctl. JSON and YAML share the field names.
type DayFile struct {
	Therapists []TherapistEntry `json:"therapists" yaml:"therapists"`
	Bookings   []BookingEntry   `json:"bookings" yaml:"bookings"`
}

// TherapistEntry is a roster row. Active defaults to true.
type TherapistEntry struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name,omitempty" yaml:"name,omitempty"`
	Active       *bool         `json:"active,omitempty" yaml:"active,omitempty"`
	Availability []WindowEntry `json:"availability,omitempty" yaml:"availability,omitempty"`
}

// WindowEntry is a weekly availability window, e.g. {weekday: monday, start: "09:00", end: "17:00"}.
type WindowEntry struct {
	Weekday string `json:"weekday" yaml:"weekday"`
	Start   string `json:"start" yaml:"start"`
	End     string `json:"end" yaml:"end"`
}

// BookingEntry is a booking row. Either end or durationMinutes may be omitted.
type BookingEntry struct {
	ID              string `json:"id" yaml:"id"`
	TherapistID     string `json:"therapistId" yaml:"therapistId"`
	Date            string `json:"date,omitempty" yaml:"date,omitempty"`
	Start           string `json:"start" yaml:"start"`
	End             string `json:"end,omitempty" yaml:"end,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty" yaml:"durationMinutes,omitempty"`
	Status          string `json:"status,omitempty" yaml:"status,omitempty"`
}

// LoadDayFile reads a day file. Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
func LoadDayFile(path string) (*DayFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read day file: %w", err)
	}

	var day DayFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &day)
	default:
		err = json.Unmarshal(data, &day)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDayFile, path, err)
	}
	return &day, nil
}

// DomainBookings converts the booking rows to domain bookings.
func (d *DayFile) DomainBookings() ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0, len(d.Bookings))
	for _, e := range d.Bookings {
		var date time.Time
		if e.Date != "" {
			parsed, err := time.Parse(domain.DateFormat, e.Date)
			if err != nil {
				return nil, fmt.Errorf("%w: booking %s: bad date %q", ErrInvalidDayFile, e.ID, e.Date)
			}
			date = parsed
		}

		status := domain.BookingStatus(e.Status)
		if status == "" {
			status = domain.StatusConfirmed
		}

		bookings = append(bookings, domain.Booking{
			ID:              e.ID,
			TherapistID:     e.TherapistID,
			Date:            date,
			Start:           types.TimeString(e.Start),
			End:             types.TimeString(e.End),
			DurationMinutes: e.DurationMinutes,
			Status:          status,
		})
	}
	return bookings, nil
}

// DomainTherapists converts the roster, skipping inactive therapists.
func (d *DayFile) DomainTherapists() ([]domain.Therapist, error) {
	therapists := make([]domain.Therapist, 0, len(d.Therapists))
	for _, e := range d.Therapists {
		if e.Active != nil && !*e.Active {
			continue
		}

		windows := make([]domain.AvailabilityWindow, 0, len(e.Availability))
		for _, w := range e.Availability {
			weekday, err := parseWeekday(w.Weekday)
			if err != nil {
				return nil, fmt.Errorf("%w: therapist %s: %v", ErrInvalidDayFile, e.ID, err)
			}
			windows = append(windows, domain.AvailabilityWindow{
				Weekday: weekday,
				Start:   types.TimeString(w.Start),
				End:     types.TimeString(w.End),
			})
		}

		therapists = append(therapists, domain.Therapist{
			ID:           e.ID,
			Name:         e.Name,
			Active:       true,
			Availability: windows,
		})
	}
	return therapists, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
