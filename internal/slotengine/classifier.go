package slotengine

import (
	"fmt"

	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// Kind класс слота
type Kind string

const (
	KindStrict Kind = "strict" // примыкает к границе свободного интервала
	KindSoft   Kind = "soft"   // не примыкает, но остаток нельзя забронировать
	KindBad    Kind = "bad"    // оставляет бронируемый промежуток или два огрызка
)

// Rule names accepted by RuleByName
const (
	RuleBoundary    = "boundary"
	RuleGapMultiple = "gap_multiple"
)

// ClassifiedSlot результат классификации одного кандидата
type ClassifiedSlot struct {
	Kind   Kind
	Slot   int    // начало слота в минутах
	Reason string // заполняется только для KindBad
}

// SlotString начало слота в формате "HH:MM"
func (s ClassifiedSlot) SlotString() string {
	return types.FromMinutes(s.Slot).String()
}

// Classifier стратегия классификации кандидатов
type Classifier interface {
	Classify(c Candidate, minGapMinutes int) ClassifiedSlot
}

// ClassifierFunc адаптер функции к Classifier
type ClassifierFunc func(c Candidate, minGapMinutes int) ClassifiedSlot

// Classify вызывает f(c, minGapMinutes)
func (f ClassifierFunc) Classify(c Candidate, minGapMinutes int) ClassifiedSlot {
	return f(c, minGapMinutes)
}

// BoundaryRule основное правило:
//   - strict: слот примыкает хотя бы к одной границе свободного интервала;
//   - soft: не примыкает, начинается в :00 или :30, и оба остатка меньше minGap;
//   - bad: всё остальное.
type BoundaryRule struct{}

// Classify реализует Classifier
func (BoundaryRule) Classify(c Candidate, minGapMinutes int) ClassifiedSlot {
	if c.FillsFromStart() || c.FillsToEnd() {
		return ClassifiedSlot{Kind: KindStrict, Slot: c.SlotStart}
	}

	if isHalfHourAligned(c.SlotStart) && c.GapBefore() < minGapMinutes && c.GapAfter() < minGapMinutes {
		return ClassifiedSlot{Kind: KindSoft, Slot: c.SlotStart}
	}

	return ClassifiedSlot{Kind: KindBad, Slot: c.SlotStart, Reason: badReason(c, minGapMinutes)}
}

// GapMultipleRule альтернативное правило: strict, если слот примыкает к границе
// или любой из остатков кратен 60 или 90 минутам; иначе bad. Soft это правило не выдаёт.
type GapMultipleRule struct{}

// Classify реализует Classifier
func (GapMultipleRule) Classify(c Candidate, minGapMinutes int) ClassifiedSlot {
	if c.FillsFromStart() || c.FillsToEnd() || isSessionMultiple(c.GapBefore()) || isSessionMultiple(c.GapAfter()) {
		return ClassifiedSlot{Kind: KindStrict, Slot: c.SlotStart}
	}

	return ClassifiedSlot{Kind: KindBad, Slot: c.SlotStart, Reason: badReason(c, minGapMinutes)}
}

// RuleByName возвращает правило по имени из конфигурации
func RuleByName(name string) (Classifier, error) {
	switch name {
	case "", RuleBoundary:
		return BoundaryRule{}, nil
	case RuleGapMultiple:
		return GapMultipleRule{}, nil
	default:
		return nil, fmt.Errorf("slotengine: unknown classifier rule %q", name)
	}
}

func isHalfHourAligned(minutes int) bool {
	part := minutes % 60
	return part == 0 || part == 30
}

func isSessionMultiple(gap int) bool {
	return gap%60 == 0 || gap%90 == 0
}

// badReason называет бронируемый остаток, если он есть, иначе оба огрызка
func badReason(c Candidate, minGapMinutes int) string {
	gapBefore, gapAfter := c.GapBefore(), c.GapAfter()
	switch {
	case gapBefore >= minGapMinutes:
		return fmt.Sprintf("Leaves bookable gap of %d min before (not allowed).", gapBefore)
	case gapAfter >= minGapMinutes:
		return fmt.Sprintf("Leaves bookable gap of %d min after (not allowed).", gapAfter)
	default:
		return fmt.Sprintf("Leaves unusable gaps: %d min before, %d min after.", gapBefore, gapAfter)
	}
}
