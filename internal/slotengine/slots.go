package slotengine

import (
	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
)

// SlotClassification слоты дня, разбитые на три класса в порядке обнаружения
type SlotClassification struct {
	Strict     []string
	Soft       []string
	Bad        []string
	BadReasons map[string]string // причина для каждого bad слота
}

func newSlotClassification() *SlotClassification {
	return &SlotClassification{
		Strict:     make([]string, 0),
		Soft:       make([]string, 0),
		Bad:        make([]string, 0),
		BadReasons: make(map[string]string),
	}
}

func (sc *SlotClassification) add(slot ClassifiedSlot) {
	s := slot.SlotString()
	switch slot.Kind {
	case KindStrict:
		sc.Strict = append(sc.Strict, s)
	case KindSoft:
		sc.Soft = append(sc.Soft, s)
	default:
		sc.Bad = append(sc.Bad, s)
		sc.BadReasons[s] = slot.Reason
	}
}

// Total количество классифицированных кандидатов
func (sc *SlotClassification) Total() int {
	return len(sc.Strict) + len(sc.Soft) + len(sc.Bad)
}

// IsAvailable true, если слот strict или soft
func (sc *SlotClassification) IsAvailable(slot string) bool {
	_, ok := sc.availableSet()[slot]
	return ok
}

func (sc *SlotClassification) availableSet() map[string]struct{} {
	set := make(map[string]struct{}, len(sc.Strict)+len(sc.Soft))
	for _, s := range sc.Strict {
		set[s] = struct{}{}
	}
	for _, s := range sc.Soft {
		set[s] = struct{}{}
	}
	return set
}

// FindBestScheduleSlots находит и классифицирует все слоты длительностью durationMinutes
// в расписании одного терапевта.
func (e *Engine) FindBestScheduleSlots(durationMinutes int, bookings []domain.Booking, params Params) (*SlotClassification, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	p, err := params.resolve()
	if err != nil {
		return nil, err
	}

	intervals, err := ToIntervals(bookings)
	if err != nil {
		return nil, err
	}

	classification, _ := e.classify(intervals, durationMinutes, p)
	return classification, nil
}

// Candidates возвращает кандидатов без классификации (для отладки и CLI)
func (e *Engine) Candidates(durationMinutes int, bookings []domain.Booking, params Params) ([]Candidate, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	p, err := params.resolve()
	if err != nil {
		return nil, err
	}

	intervals, err := ToIntervals(bookings)
	if err != nil {
		return nil, err
	}

	return GenerateCandidates(FreeIntervals(intervals, p.dayStart, p.dayEnd), durationMinutes, e.step), nil
}

// classify прогоняет конвейер free -> candidates -> classifier по отсортированным интервалам
func (e *Engine) classify(sorted []BookingInterval, duration int, p resolvedParams) (*SlotClassification, []Interval) {
	free := FreeIntervals(sorted, p.dayStart, p.dayEnd)
	result := newSlotClassification()

	for _, c := range GenerateCandidates(free, duration, e.step) {
		result.add(e.classifier.Classify(c, p.minGap))
	}

	return result, free
}
