package propose_swaps

import (
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
)

// Limits ограничения на размер расписания. 0 - без ограничения.
type Limits struct {
	MaxTherapists           int
	MaxBookingsPerTherapist int
}

// Request модель запроса на поиск обменов
type Request struct {
	Date            time.Time        // День расписания из БД; не используется, если задан Bookings
	Bookings        []domain.Booking // Расписание из запроса; nil - читать из БД по Date
	DurationMinutes int
	Params          slotengine.Params
}

// Response модель ответа
type Response struct {
	Date            time.Time
	DurationMinutes int
	Proposals       []slotengine.SwapProposal
	Stats           Stats
}

// Stats счётчики рассмотренных пар бронирований
type Stats struct {
	Evaluated       int
	RejectedOverlap int
	Unchanged       int
}
