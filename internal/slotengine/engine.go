package slotengine

import (
	"fmt"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// Params параметры запроса. Нулевые значения заменяются значениями по умолчанию.
type Params struct {
	MinGapMinutes int              // по умолчанию 60
	DayStart      types.TimeString // по умолчанию "08:00"
	DayEnd        types.TimeString // по умолчанию "18:00"
}

// DefaultParams возвращает параметры по умолчанию
func DefaultParams() Params {
	return Params{
		MinGapMinutes: domain.DefaultMinGapMinutes,
		DayStart:      domain.DefaultDayStart,
		DayEnd:        domain.DefaultDayEnd,
	}
}

// WithDefaults заполняет нулевые поля значениями defaults
func (p Params) WithDefaults(defaults Params) Params {
	if p.MinGapMinutes == 0 {
		p.MinGapMinutes = defaults.MinGapMinutes
	}
	if p.DayStart.IsZero() {
		p.DayStart = defaults.DayStart
	}
	if p.DayEnd.IsZero() {
		p.DayEnd = defaults.DayEnd
	}
	return p
}

// resolvedParams параметры, приведённые к минутам
type resolvedParams struct {
	minGap   int
	dayStart int
	dayEnd   int
}

func (p Params) resolve() (resolvedParams, error) {
	def := DefaultParams()
	if p.MinGapMinutes <= 0 {
		p.MinGapMinutes = def.MinGapMinutes
	}
	if p.DayStart.IsZero() {
		p.DayStart = def.DayStart
	}
	if p.DayEnd.IsZero() {
		p.DayEnd = def.DayEnd
	}

	dayStart, err := p.DayStart.Minutes()
	if err != nil {
		return resolvedParams{}, err
	}
	dayEnd, err := p.DayEnd.Minutes()
	if err != nil {
		return resolvedParams{}, err
	}
	if dayStart >= dayEnd {
		return resolvedParams{}, fmt.Errorf("%w: %s-%s", ErrInvalidDayWindow, p.DayStart, p.DayEnd)
	}

	return resolvedParams{minGap: p.MinGapMinutes, dayStart: dayStart, dayEnd: dayEnd}, nil
}

// Options настройки движка
type Options struct {
	Classifier  Classifier // nil - BoundaryRule
	StepMinutes int        // шаг сетки кандидатов, <= 0 - 15 минут
	Workers     int        // > 1 - параллельный перебор пар терапевтов в поиске обменов
	Trace       TraceFunc  // вызывается для каждой оценённой пары бронирований
}

// Engine движок подбора слотов. Не хранит изменяемого состояния, безопасен для конкурентного использования.
type Engine struct {
	classifier Classifier
	step       int
	workers    int
	trace      TraceFunc
}

// NewEngine создает движок
func NewEngine(opts Options) *Engine {
	e := &Engine{
		classifier: opts.Classifier,
		step:       opts.StepMinutes,
		workers:    opts.Workers,
		trace:      opts.Trace,
	}
	if e.classifier == nil {
		e.classifier = BoundaryRule{}
	}
	if e.step <= 0 {
		e.step = domain.DefaultStepMinutes
	}
	if e.workers < 1 {
		e.workers = 1
	}
	return e
}

// WithTrace возвращает копию движка с другим trace-хуком
func (e *Engine) WithTrace(trace TraceFunc) *Engine {
	clone := *e
	clone.trace = trace
	return &clone
}

var defaultEngine = NewEngine(Options{})

// FindBestScheduleSlots классифицирует слоты одного терапевта движком по умолчанию
func FindBestScheduleSlots(durationMinutes int, bookings []domain.Booking, params Params) (*SlotClassification, error) {
	return defaultEngine.FindBestScheduleSlots(durationMinutes, bookings, params)
}

// ProposeSwapOptions ищет обмены бронированиями движком по умолчанию
func ProposeSwapOptions(bookings []domain.Booking, durationMinutes int, params Params) ([]SwapProposal, error) {
	return defaultEngine.ProposeSwapOptions(bookings, durationMinutes, params)
}
