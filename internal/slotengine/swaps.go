package slotengine

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// SwapProposal если SwapOut (сейчас у TherapistID) обменять на SwapIn (сейчас у другого терапевта),
// у TherapistID появится слот Slot класса Kind.
type SwapProposal struct {
	Slot        string
	TherapistID string
	SwapOut     domain.Booking
	SwapIn      domain.Booking
	Kind        Kind
}

// Key ключ дедупликации: терапевт@слот@входящее@уходящее
func (p SwapProposal) Key() string {
	return p.TherapistID + "@" + p.Slot + "@" + p.SwapIn.ID + "@" + p.SwapOut.ID
}

// TraceOutcome итог оценки одной пары бронирований
type TraceOutcome string

const (
	TraceRejectedOverlap TraceOutcome = "rejected_overlap" // обмен даёт двойное бронирование
	TraceUnchanged       TraceOutcome = "unchanged"        // терапевты просто меняются расписаниями
	TraceEvaluated       TraceOutcome = "evaluated"
)

// SwapTrace событие оценки обмена BookingA (терапевт A) <-> BookingB (терапевт B)
type SwapTrace struct {
	TherapistA string
	TherapistB string
	BookingA   string
	BookingB   string
	Outcome    TraceOutcome
	Unlocked   int // найдено новых слотов до дедупликации
}

// TraceFunc хук наблюдения за поиском. При Workers > 1 вызывается конкурентно.
type TraceFunc func(SwapTrace)

type scheduleEntry struct {
	booking  domain.Booking
	interval BookingInterval
}

// therapistSchedule расписание терапевта и его классификация до обмена
type therapistSchedule struct {
	id      string
	entries []scheduleEntry
	sorted  []BookingInterval
	before  map[string]struct{}
}

type therapistPair struct {
	a, b *therapistSchedule
}

// ProposeSwapOptions перебирает обмены одной записи на одну между каждой парой терапевтов
// и возвращает слоты, которые появляются только благодаря обмену.
// Порядок результата не несёт смысла; при одинаковом входе он одинаков.
func (e *Engine) ProposeSwapOptions(bookings []domain.Booking, durationMinutes int, params Params) ([]SwapProposal, error) {
	return e.ProposeSwapOptionsContext(context.Background(), bookings, durationMinutes, params)
}

// ProposeSwapOptionsContext то же, что ProposeSwapOptions, но перебор останавливается перед
// следующим обменом, как только ctx отменён, и возвращает ctx.Err().
func (e *Engine) ProposeSwapOptionsContext(ctx context.Context, bookings []domain.Booking, durationMinutes int, params Params) ([]SwapProposal, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	p, err := params.resolve()
	if err != nil {
		return nil, err
	}

	order, groups := domain.GroupByTherapist(bookings)
	schedules := make([]*therapistSchedule, 0, len(order))
	for _, id := range order {
		s, err := e.newTherapistSchedule(id, groups[id], durationMinutes, p)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	// Пара (A,B) и пара (B,A) дают один и тот же обмен, поэтому перебираем неупорядоченные пары
	pairs := make([]therapistPair, 0, len(schedules)*(len(schedules)-1)/2)
	for i := range schedules {
		for j := i + 1; j < len(schedules); j++ {
			pairs = append(pairs, therapistPair{a: schedules[i], b: schedules[j]})
		}
	}

	results := make([][]SwapProposal, len(pairs))
	if e.workers > 1 && len(pairs) > 1 {
		e.evaluateParallel(ctx, pairs, results, durationMinutes, p)
	} else {
		for i, pair := range pairs {
			results[i] = e.evaluatePair(ctx, pair, durationMinutes, p)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	proposals := make([]SwapProposal, 0)
	for _, res := range results {
		for _, proposal := range res {
			key := proposal.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			proposals = append(proposals, proposal)
		}
	}

	return proposals, nil
}

func (e *Engine) newTherapistSchedule(id string, bookings []domain.Booking, duration int, p resolvedParams) (*therapistSchedule, error) {
	s := &therapistSchedule{
		id:      id,
		entries: make([]scheduleEntry, 0, len(bookings)),
		sorted:  make([]BookingInterval, 0, len(bookings)),
	}

	for _, b := range bookings {
		iv, err := NewBookingInterval(b)
		if err != nil {
			return nil, err
		}
		s.entries = append(s.entries, scheduleEntry{booking: b, interval: iv})
		s.sorted = append(s.sorted, iv)
	}
	sortByStart(s.sorted)

	before, _ := e.classify(s.sorted, duration, p)
	s.before = before.availableSet()

	return s, nil
}

func (e *Engine) evaluateParallel(ctx context.Context, pairs []therapistPair, results [][]SwapProposal, duration int, p resolvedParams) {
	workers := e.workers
	if workers > len(pairs) {
		workers = len(pairs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = e.evaluatePair(ctx, pairs[idx], duration, p)
			}
		}()
	}

	for idx := range pairs {
		if ctx.Err() != nil {
			break
		}
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
}

// evaluatePair оценивает все обмены a <-> b между двумя терапевтами
func (e *Engine) evaluatePair(ctx context.Context, pair therapistPair, duration int, p resolvedParams) []SwapProposal {
	a, b := pair.a, pair.b
	out := make([]SwapProposal, 0)

	for i, ea := range a.entries {
		for j, eb := range b.entries {
			if ctx.Err() != nil {
				return out
			}
			newA := replaceEntry(a.entries, i, eb.interval, a.id)
			newB := replaceEntry(b.entries, j, ea.interval, b.id)

			trace := SwapTrace{TherapistA: a.id, TherapistB: b.id, BookingA: ea.booking.ID, BookingB: eb.booking.ID}

			if hasOverlap(newA) || hasOverlap(newB) {
				trace.Outcome = TraceRejectedOverlap
				e.emitTrace(trace)
				continue
			}

			if sameShape(newA, b.sorted) && sameShape(newB, a.sorted) {
				trace.Outcome = TraceUnchanged
				e.emitTrace(trace)
				continue
			}

			afterA, freeA := e.classify(newA, duration, p)
			afterB, freeB := e.classify(newB, duration, p)

			forB := unlockedSlots(b, afterB, freeB, duration, eb.booking, ea.booking)
			forA := unlockedSlots(a, afterA, freeA, duration, ea.booking, eb.booking)
			out = append(out, forB...)
			out = append(out, forA...)

			trace.Outcome = TraceEvaluated
			trace.Unlocked = len(forB) + len(forA)
			e.emitTrace(trace)
		}
	}

	return out
}

func (e *Engine) emitTrace(t SwapTrace) {
	if e.trace != nil {
		e.trace(t)
	}
}

// unlockedSlots слоты, доступные owner после обмена, но недоступные до него
func unlockedSlots(
	owner *therapistSchedule,
	after *SlotClassification,
	free []Interval,
	duration int,
	swapOut domain.Booking,
	swapIn domain.Booking,
) []SwapProposal {
	strict := make(map[string]struct{}, len(after.Strict))
	for _, s := range after.Strict {
		strict[s] = struct{}{}
	}

	out := make([]SwapProposal, 0)
	listed := make(map[string]struct{})
	for _, slot := range append(append([]string{}, after.Strict...), after.Soft...) {
		if _, ok := listed[slot]; ok {
			continue
		}
		listed[slot] = struct{}{}

		if _, ok := owner.before[slot]; ok {
			continue
		}

		kind := KindSoft
		if _, ok := strict[slot]; ok {
			kind = KindStrict
			if closesTailOnly(slot, duration, free) {
				kind = KindSoft
			}
		}

		out = append(out, SwapProposal{
			Slot:        slot,
			TherapistID: owner.id,
			SwapOut:     swapOut,
			SwapIn:      swapIn,
			Kind:        kind,
		})
	}

	return out
}

// closesTailOnly true, если слот закрывает только хвост свободного интервала:
// заканчивается на его конце, но начинается не с его начала.
func closesTailOnly(slot string, duration int, free []Interval) bool {
	start, err := types.ParseMinutes(slot)
	if err != nil {
		return false
	}
	span := Interval{Start: start, End: start + duration}

	for _, fi := range free {
		if fi.Contains(span) {
			return span.Start != fi.Start && span.End == fi.End
		}
	}
	return false
}

// replaceEntry копия расписания, где entries[idx] заменён на incoming, переназначенный на therapistID.
// Результат отсортирован по началу.
func replaceEntry(entries []scheduleEntry, idx int, incoming BookingInterval, therapistID string) []BookingInterval {
	out := make([]BookingInterval, 0, len(entries))
	for k, e := range entries {
		if k == idx {
			continue
		}
		out = append(out, e.interval)
	}
	incoming.TherapistID = therapistID
	out = append(out, incoming)
	sortByStart(out)
	return out
}

// sameShape true, если два отсортированных расписания занимают одни и те же интервалы
func sameShape(x, y []BookingInterval) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i].Start != y[i].Start || x[i].End != y[i].End {
			return false
		}
	}
	return true
}
