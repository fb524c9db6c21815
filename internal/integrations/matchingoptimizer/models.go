package matchingoptimizer

// Все времена - минуты от начала суток.

// OptimizeRequest запрос на подбор размещения новой записи
type OptimizeRequest struct {
	Bookings   []Booking   `json:"bookings"`
	Therapists []Therapist `json:"therapists"`
	NewRequest NewRequest  `json:"newRequest"`
}

// Booking существующая запись
type Booking struct {
	ID              string `json:"id"`
	TherapistID     string `json:"therapistId"`
	StartTime       int    `json:"startTime"`
	EndTime         int    `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// Therapist терапевт с рабочими окнами на запрошенный день
type Therapist struct {
	ID           string   `json:"id"`
	Availability []Window `json:"availability"`
}

type Window struct {
	StartTime int `json:"startTime"`
	EndTime   int `json:"endTime"`
}

// NewRequest параметры новой записи
type NewRequest struct {
	Duration    int `json:"duration"`
	WindowStart int `json:"windowStart"`
	WindowEnd   int `json:"windowEnd"`
}

// OptimizeResponse ответ оптимизатора
type OptimizeResponse struct {
	Slots       []Gap        `json:"slots"`
	Relocations []Relocation `json:"relocations"`
	TotalWeight float64      `json:"totalWeight"`
}

// Gap свободный промежуток, в который помещается новая запись
type Gap struct {
	TherapistID string `json:"therapistId"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
}

// Relocation предлагаемый перенос существующей записи
type Relocation struct {
	BookingID       string `json:"bookingId"`
	FromTherapistID string `json:"fromTherapistId"`
	ToTherapistID   string `json:"toTherapistId"`
	Slot            int    `json:"slot"`
}

// ErrorResponse модель ошибки от оптимизатора
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
