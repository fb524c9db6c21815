package domain

// SlotRequest цель поиска слотов: новая запись или перенос существующей.
// Реализации: NewSlotRequest, EditBookingRequest.
type SlotRequest interface {
	slotRequest()
}

// NewSlotRequest поиск слота для новой записи
type NewSlotRequest struct {
	DurationMinutes int
	TherapistID     *string // nil - все терапевты
}

// EditBookingRequest поиск нового времени для существующей записи.
// Сама запись исключается из расписания своего терапевта.
type EditBookingRequest struct {
	BookingID       string
	DurationMinutes int // 0 - длительность самой записи
}

func (NewSlotRequest) slotRequest()     {}
func (EditBookingRequest) slotRequest() {}
