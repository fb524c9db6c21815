package slotengine

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

func hasProposal(proposals []SwapProposal, therapistID, slot string, kind Kind) bool {
	for _, p := range proposals {
		if (therapistID == "" || p.TherapistID == therapistID) && p.Slot == slot && p.Kind == kind {
			return true
		}
	}
	return false
}

func TestProposeSwapOptions_UnlocksStrictSlotsForBoth(t *testing.T) {
	bookings := []domain.Booking{
		bk("a1", "A", "08:00", "09:30"),
		bk("a2", "A", "10:30", "11:30"),
		bk("a3", "A", "12:30", "13:30"),
		bk("b1", "B", "08:00", "09:00"),
		bk("b2", "B", "09:30", "11:00"),
		bk("b3", "B", "12:00", "13:00"),
	}

	got, err := ProposeSwapOptions(bookings, 90, DefaultParams())
	require.NoError(t, err)

	assert.True(t, hasProposal(got, "B", "09:00", KindStrict), "B 09:00 strict")
	assert.True(t, hasProposal(got, "A", "11:00", KindStrict), "A 11:00 strict")

	for _, p := range got {
		if p.TherapistID == "B" && p.Slot == "09:00" {
			assert.Equal(t, "b2", p.SwapOut.ID)
			assert.Equal(t, "a2", p.SwapIn.ID)
			assert.Equal(t, "A", p.SwapIn.TherapistID, "swapIn keeps its current therapist")
		}
	}
}

func TestProposeSwapOptions_IdenticalSchedulesUnlockNothing(t *testing.T) {
	bookings := []domain.Booking{
		bk("a1", "A", "08:00", "09:30"),
		bk("a2", "A", "10:00", "11:00"),
		bk("b1", "B", "08:00", "09:30"),
		bk("b2", "B", "10:00", "11:00"),
	}

	got, err := ProposeSwapOptions(bookings, 90, DefaultParams())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProposeSwapOptions_TailFillIsDemotedToSoft(t *testing.T) {
	bookings := []domain.Booking{
		bk("a1", "A", "09:00", "10:00"),
		bk("a2", "A", "12:00", "13:00"),
		bk("b1", "B", "10:00", "11:00"),
	}

	got, err := ProposeSwapOptions(bookings, 120, DefaultParams())
	require.NoError(t, err)

	assert.True(t, hasProposal(got, "", "10:00", KindSoft))
	assert.True(t, hasProposal(got, "B", "10:00", KindSoft))
}

func TestProposeSwapOptions_BackToBackSingleBookings(t *testing.T) {
	bookings := []domain.Booking{
		bk("a1", "A", "08:00", "09:00"),
		bk("b1", "B", "09:00", "10:00"),
	}

	got, err := ProposeSwapOptions(bookings, 60, DefaultParams())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProposeSwapOptions_SingleTherapist(t *testing.T) {
	got, err := ProposeSwapOptions([]domain.Booking{bk("a1", "A", "09:00", "10:00")}, 60, DefaultParams())
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ProposeSwapOptions(nil, 60, DefaultParams())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProposeSwapOptions_Errors(t *testing.T) {
	_, err := ProposeSwapOptions(nil, -5, DefaultParams())
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = ProposeSwapOptions([]domain.Booking{bk("a1", "A", "9-00", "10:00")}, 60, DefaultParams())
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}

func TestProposeSwapOptions_NoDuplicates(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 30; i++ {
		got, err := ProposeSwapOptions(randomTeam(r, 4), 60, DefaultParams())
		require.NoError(t, err)

		keys := make(map[string]struct{}, len(got))
		for _, p := range got {
			_, dup := keys[p.Key()]
			assert.False(t, dup, p.Key())
			keys[p.Key()] = struct{}{}
		}
	}
}

func TestProposeSwapOptions_PostSwapScheduleHasNoOverlap(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 30; i++ {
		bookings := randomTeam(r, 3)
		got, err := ProposeSwapOptions(bookings, 45, DefaultParams())
		require.NoError(t, err)

		_, groups := domain.GroupByTherapist(bookings)
		for _, p := range got {
			schedule := make([]domain.Booking, 0)
			for _, b := range groups[p.TherapistID] {
				if b.ID != p.SwapOut.ID {
					schedule = append(schedule, b)
				}
			}
			schedule = append(schedule, p.SwapIn.WithTherapist(p.TherapistID))

			sorted, err := ToIntervals(schedule)
			require.NoError(t, err)
			assert.False(t, hasOverlap(sorted), "proposal %s", p.Key())
		}
	}
}

func TestProposeSwapOptions_ParallelMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	sequential := NewEngine(Options{})
	parallel := NewEngine(Options{Workers: 4})

	for i := 0; i < 20; i++ {
		bookings := randomTeam(r, 5)

		want, err := sequential.ProposeSwapOptions(bookings, 60, DefaultParams())
		require.NoError(t, err)
		got, err := parallel.ProposeSwapOptions(bookings, 60, DefaultParams())
		require.NoError(t, err)

		assert.Equal(t, want, got)
	}
}

func TestProposeSwapOptions_Trace(t *testing.T) {
	bookings := []domain.Booking{
		bk("a1", "A", "08:00", "09:30"),
		bk("a2", "A", "10:00", "11:00"),
		bk("b1", "B", "08:00", "09:30"),
		bk("b2", "B", "10:00", "11:00"),
	}

	var mu sync.Mutex
	outcomes := make(map[TraceOutcome]int)
	engine := NewEngine(Options{}).WithTrace(func(tr SwapTrace) {
		mu.Lock()
		defer mu.Unlock()
		outcomes[tr.Outcome]++
		assert.Equal(t, "A", tr.TherapistA)
		assert.Equal(t, "B", tr.TherapistB)
	})

	_, err := engine.ProposeSwapOptions(bookings, 90, DefaultParams())
	require.NoError(t, err)

	// a1<->b2 и a2<->b1 дают пересечения, a1<->b1 и a2<->b2 ничего не меняют
	assert.Equal(t, 2, outcomes[TraceRejectedOverlap])
	assert.Equal(t, 2, outcomes[TraceUnchanged])
	assert.Equal(t, 0, outcomes[TraceEvaluated])
}

func TestProposeSwapOptionsContext_Cancelled(t *testing.T) {
	bookings := []domain.Booking{
		bk("a1", "A", "08:00", "09:30"),
		bk("a2", "A", "10:00", "11:00"),
		bk("b1", "B", "08:00", "09:30"),
		bk("b2", "B", "10:00", "11:00"),
	}

	t.Run("before start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		traced := 0
		engine := NewEngine(Options{}).WithTrace(func(SwapTrace) { traced++ })

		proposals, err := engine.ProposeSwapOptionsContext(ctx, bookings, 90, DefaultParams())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, proposals)
		assert.Zero(t, traced)
	})

	t.Run("mid search", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		traced := 0
		engine := NewEngine(Options{}).WithTrace(func(SwapTrace) {
			traced++
			cancel()
		})

		_, err := engine.ProposeSwapOptionsContext(ctx, bookings, 90, DefaultParams())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, traced)
	})

	t.Run("parallel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var traced int64
		engine := NewEngine(Options{Workers: 4}).WithTrace(func(SwapTrace) { atomic.AddInt64(&traced, 1) })

		_, err := engine.ProposeSwapOptionsContext(ctx, randomTeam(rand.New(rand.NewSource(7)), 4), 60, DefaultParams())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, atomic.LoadInt64(&traced))
	})
}

// randomTeam расписания нескольких терапевтов без пересечений внутри каждого
func randomTeam(r *rand.Rand, therapists int) []domain.Booking {
	team := make([]domain.Booking, 0)
	for t := 0; t < therapists; t++ {
		id := string(rune('A' + t))
		for _, b := range randomDay(r) {
			b.ID = id + b.ID
			b.TherapistID = id
			team = append(team, b)
		}
	}
	return team
}
