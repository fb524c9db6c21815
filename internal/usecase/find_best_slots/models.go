package find_best_slots

import (
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
)

// Request модель запроса на подбор слотов
type Request struct {
	Date     time.Time          // День расписания из БД; не используется, если задан Bookings
	Bookings []domain.Booking   // Расписание из запроса; nil - читать из БД по Date
	Target   domain.SlotRequest // NewSlotRequest или EditBookingRequest
	Params   slotengine.Params  // Нулевые поля берутся из конфигурации
}

// Response модель ответа
type Response struct {
	Date            time.Time
	DurationMinutes int
	EditedBookingID string // Пусто для новой записи
	Therapists      []TherapistSlots
}

// TherapistSlots слоты одного терапевта
type TherapistSlots struct {
	TherapistID string
	Slots       *slotengine.SlotClassification
}
