package slotengine

// Candidate возможный слот внутри свободного интервала, все значения в минутах
type Candidate struct {
	SlotStart int
	SlotEnd   int
	FreeStart int
	FreeEnd   int
}

// GapBefore свободное время между началом интервала и слотом
func (c Candidate) GapBefore() int {
	return c.SlotStart - c.FreeStart
}

// GapAfter свободное время между слотом и концом интервала
func (c Candidate) GapAfter() int {
	return c.FreeEnd - c.SlotEnd
}

// FillsFromStart слот начинается ровно с начала свободного интервала
func (c Candidate) FillsFromStart() bool {
	return c.SlotStart == c.FreeStart
}

// FillsToEnd слот заканчивается ровно в конце свободного интервала
func (c Candidate) FillsToEnd() bool {
	return c.SlotEnd == c.FreeEnd
}

// GenerateCandidates перебирает начала слотов с шагом step в каждом свободном интервале,
// пока слот длительностью duration помещается целиком.
// Порядок: по интервалам, внутри интервала по возрастанию начала.
func GenerateCandidates(free []Interval, duration, step int) []Candidate {
	candidates := make([]Candidate, 0)
	if duration <= 0 || step <= 0 {
		return candidates
	}

	for _, fi := range free {
		for s := fi.Start; s+duration <= fi.End; s += step {
			candidates = append(candidates, Candidate{
				SlotStart: s,
				SlotEnd:   s + duration,
				FreeStart: fi.Start,
				FreeEnd:   fi.End,
			})
		}
	}

	return candidates
}
