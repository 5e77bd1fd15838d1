package availability

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/types"
)

// Range интервал в минутах от полуночи [Start, End)
type Range struct {
	Start int
	End   int
}

// Overlaps проверяет пересечение кандидата r с занятым интервалом b.
// Касание границами пересечением не считается.
func (r Range) Overlaps(b Range) bool {
	startsInside := r.Start >= b.Start && r.Start < b.End
	endsInside := r.End > b.Start && r.End <= b.End
	contains := r.Start <= b.Start && r.End >= b.End
	return startsInside || endsInside || contains
}

// Overlaps возвращает true, если candidate пересекается хотя бы с одним интервалом
func Overlaps(candidate Range, ranges []Range) bool {
	for _, b := range ranges {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// BufferedRanges переводит активные записи в интервалы [start, end+buffer), отсортированные по началу.
// Буфер добавляется только в конец: это время на дорогу после работы.
// Неактивные записи (Completed, Canceled) пропускаются.
func BufferedRanges(appointments []*domain.Appointment, bufferMinutes int) ([]Range, error) {
	ranges := make([]Range, 0, len(appointments))
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}

		r, err := parseRange(a.StartTime, a.EndTime)
		if err != nil {
			return nil, fmt.Errorf("appointment id=%d: %w", a.ID, err)
		}
		r.End += bufferMinutes
		ranges = append(ranges, r)
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	return ranges, nil
}

// gap пустое время между кандидатом и соседом.
// AtShiftEdge = true, если соседа нет и промежуток считается до границы смены.
type gap struct {
	Minutes     int
	AtShiftEdge bool
}

// gaps считает пустое время до и после кандидата внутри смены:
// до ближайшего занятого интервала (или до границы смены, если интервала нет)
func gaps(candidate Range, ranges []Range, shift Range) (before, after gap) {
	before = gap{Minutes: candidate.Start - shift.Start, AtShiftEdge: true}
	after = gap{Minutes: shift.End - candidate.End, AtShiftEdge: true}

	for _, b := range ranges {
		if b.End <= candidate.Start && candidate.Start-b.End <= before.Minutes {
			before = gap{Minutes: candidate.Start - b.End}
		}
		if b.Start >= candidate.End && b.Start-candidate.End <= after.Minutes {
			after = gap{Minutes: b.Start - candidate.End}
		}
	}

	return before, after
}

func parseRange(start, end types.TimeString) (Range, error) {
	s, err := start.Minutes()
	if err != nil {
		return Range{}, fmt.Errorf("%w: %v", ErrMalformedTime, err)
	}
	e, err := end.Minutes()
	if err != nil {
		return Range{}, fmt.Errorf("%w: %v", ErrMalformedTime, err)
	}
	if s >= e {
		return Range{}, fmt.Errorf("%w: %s-%s", ErrInvalidRange, start, end)
	}
	return Range{Start: s, End: e}, nil
}
