package slotengine

// FreeIntervals вычитает отсортированные бронирования из рабочего дня [dayStart, dayEnd).
// Бронирования вне окна игнорируются, частично попадающие обрезаются его границами.
// Пересекающиеся бронирования не склеиваются и не проверяются: за это отвечает вызывающий.
// Промежутки нулевой и отрицательной длины не выдаются.
func FreeIntervals(sorted []BookingInterval, dayStart, dayEnd int) []Interval {
	inWindow := make([]BookingInterval, 0, len(sorted))
	for _, b := range sorted {
		if b.End <= dayStart || b.Start >= dayEnd {
			continue
		}
		inWindow = append(inWindow, b)
	}

	if len(inWindow) == 0 {
		if dayEnd > dayStart {
			return []Interval{{Start: dayStart, End: dayEnd}}
		}
		return []Interval{}
	}

	free := make([]Interval, 0, len(inWindow)+1)
	appendGap := func(start, end int) {
		start, end = max(start, dayStart), min(end, dayEnd)
		if end > start {
			free = append(free, Interval{Start: start, End: end})
		}
	}

	appendGap(dayStart, inWindow[0].Start)
	for i := 0; i < len(inWindow)-1; i++ {
		appendGap(inWindow[i].End, inWindow[i+1].Start)
	}
	appendGap(inWindow[len(inWindow)-1].End, dayEnd)

	return free
}
