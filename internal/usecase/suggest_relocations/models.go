package suggest_relocations

import (
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// Request модель запроса на подбор размещения с переносами
type Request struct {
	Date            time.Time
	DurationMinutes int
	WindowStart     types.TimeString // пусто - самое раннее окно терапевтов
	WindowEnd       types.TimeString // пусто - самое позднее окно терапевтов
}

// Response модель ответа
type Response struct {
	Date        time.Time
	Gaps        []Gap
	Relocations []Relocation
	TotalWeight float64
}

// Gap свободный промежуток, куда помещается новая запись
type Gap struct {
	TherapistID string
	Start       types.TimeString
	End         types.TimeString
}

// Relocation предлагаемый перенос существующей записи
type Relocation struct {
	BookingID       string
	FromTherapistID string
	ToTherapistID   string
	Slot            types.TimeString
}
