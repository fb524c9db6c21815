package slotengine

import (
	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

func bk(id, therapistID, start, end string) domain.Booking {
	return domain.Booking{
		ID:          id,
		TherapistID: therapistID,
		Start:       types.TimeString(start),
		End:         types.TimeString(end),
	}
}

func intervalsOf(bookings ...domain.Booking) []BookingInterval {
	out, err := ToIntervals(bookings)
	if err != nil {
		panic(err)
	}
	return out
}
