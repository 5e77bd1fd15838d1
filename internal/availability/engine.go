package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/types"
)

// Rules параметры расчёта свободных слотов
type Rules struct {
	// TravelBufferMinutes время на дорогу, добавляется к концу каждой активной записи
	TravelBufferMinutes int
	// StepMinutes шаг, с которым перебираются начала слотов от начала смены
	StepMinutes int
	// AnchorMinMinutes минимальная длина промежутка, который ещё можно продать.
	// Промежуток до/после слота должен быть либо 0, либо не меньше этого значения.
	AnchorMinMinutes int
	// IgnoreShiftEdgeGaps не применять правило якоря к промежуткам до границ смены,
	// только к промежуткам между записями
	IgnoreShiftEdgeGaps bool
}

// DefaultRules параметры по умолчанию
func DefaultRules() Rules {
	return Rules{
		TravelBufferMinutes: domain.DefaultTravelBufferMinutes,
		StepMinutes:         domain.DefaultCandidateStepMinutes,
		AnchorMinMinutes:    domain.DefaultAnchorMinMinutes,
	}
}

// Validate проверяет параметры
func (r Rules) Validate() error {
	if r.StepMinutes <= 0 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidRules, r.StepMinutes)
	}
	if r.TravelBufferMinutes < 0 {
		return fmt.Errorf("%w: travel buffer must not be negative, got %d", ErrInvalidRules, r.TravelBufferMinutes)
	}
	if r.AnchorMinMinutes < 0 {
		return fmt.Errorf("%w: anchor minimum must not be negative, got %d", ErrInvalidRules, r.AnchorMinMinutes)
	}
	return nil
}

// Engine считает свободные слоты по сменам и записям.
// Не хранит состояния и не делает I/O, безопасен для конкурентного использования.
type Engine struct {
	rules Rules
}

// NewEngine создает движок с проверенными параметрами
func NewEngine(rules Rules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Engine{rules: rules}, nil
}

// Rules возвращает параметры движка
func (e *Engine) Rules() Rules {
	return e.rules
}

type dayShift struct {
	shift *domain.Shift
	day   string
	span  Range
}

// ComputeAvailableSlots возвращает все слоты длиной requestedMinutes, которые:
//   - целиком лежат внутри одной смены;
//   - не пересекаются с активными записями того же дня (с учётом буфера на дорогу);
//   - не оставляют до и после себя "мёртвых" промежутков короче AnchorMinMinutes.
//
// Результат упорядочен по дню, затем по времени начала. Входные срезы не изменяются.
// Некорректное время в данных приводит к ошибке для всего вызова, частичного результата нет.
func (e *Engine) ComputeAvailableSlots(
	shifts []*domain.Shift,
	appointments []*domain.Appointment,
	requestedMinutes int,
) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0)
	if requestedMinutes <= 0 {
		return slots, nil
	}

	busyByDay, err := e.busyRangesByDay(appointments)
	if err != nil {
		return nil, err
	}

	ordered, err := orderShifts(shifts)
	if err != nil {
		return nil, err
	}

	for _, ds := range ordered {
		shiftSlots, err := e.shiftSlots(ds, busyByDay[ds.day], requestedMinutes)
		if err != nil {
			return nil, err
		}
		slots = append(slots, shiftSlots...)
	}

	return slots, nil
}

// shiftSlots перебирает кандидатов внутри одной смены
func (e *Engine) shiftSlots(ds dayShift, busy []Range, requestedMinutes int) ([]domain.Slot, error) {
	var slots []domain.Slot

	for start := ds.span.Start; start+requestedMinutes <= ds.span.End; start += e.rules.StepMinutes {
		candidate := Range{Start: start, End: start + requestedMinutes}

		if Overlaps(candidate, busy) {
			continue
		}

		before, after := gaps(candidate, busy, ds.span)
		if !e.isAnchored(before) || !e.isAnchored(after) {
			continue
		}

		slot, err := newSlot(ds.shift, candidate)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// isAnchored слот либо прижат к соседу (0), либо оставляет промежуток, в который влезет ещё одна работа
func (e *Engine) isAnchored(g gap) bool {
	if g.AtShiftEdge && e.rules.IgnoreShiftEdgeGaps {
		return true
	}
	return g.Minutes == 0 || g.Minutes >= e.rules.AnchorMinMinutes
}

func (e *Engine) busyRangesByDay(appointments []*domain.Appointment) (map[string][]Range, error) {
	grouped := make(map[string][]*domain.Appointment)
	for _, a := range appointments {
		day := domain.DayKey(a.Date)
		grouped[day] = append(grouped[day], a)
	}

	busy := make(map[string][]Range, len(grouped))
	for day, dayAppointments := range grouped {
		ranges, err := BufferedRanges(dayAppointments, e.rules.TravelBufferMinutes)
		if err != nil {
			return nil, err
		}
		busy[day] = ranges
	}

	return busy, nil
}

// orderShifts парсит смены и сортирует их по дню и времени начала
func orderShifts(shifts []*domain.Shift) ([]dayShift, error) {
	ordered := make([]dayShift, 0, len(shifts))
	for _, s := range shifts {
		span, err := parseRange(s.StartTime, s.EndTime)
		if err != nil {
			return nil, fmt.Errorf("shift id=%d: %w", s.ID, err)
		}
		ordered = append(ordered, dayShift{shift: s, day: domain.DayKey(s.Date), span: span})
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].day != ordered[j].day {
			return ordered[i].day < ordered[j].day
		}
		return ordered[i].span.Start < ordered[j].span.Start
	})

	return ordered, nil
}

func newSlot(shift *domain.Shift, r Range) (domain.Slot, error) {
	start, err := types.NewTimeStringFromMinutes(r.Start)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("%w: %v", ErrMalformedTime, err)
	}
	end, err := types.NewTimeStringFromMinutes(r.End)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("%w: %v", ErrMalformedTime, err)
	}

	return domain.Slot{
		ID:        SlotID(shift.ID, r.Start),
		Date:      domain.NormalizeDate(shift.Date),
		StartTime: start,
		EndTime:   end,
		ShiftID:   shift.ID,
	}, nil
}

// SlotID синтетический идентификатор слота для ключей на фронтенде
func SlotID(shiftID int64, startMinute int) string {
	return fmt.Sprintf("%d-%d", shiftID, startMinute)
}

// FindSlot ищет среди slots слот с точно такими же днём, началом и концом
func FindSlot(slots []domain.Slot, date time.Time, start, end types.TimeString) (domain.Slot, bool) {
	day := domain.DayKey(date)
	for _, s := range slots {
		if domain.DayKey(s.Date) == day && s.StartTime == start && s.EndTime == end {
			return s, true
		}
	}
	return domain.Slot{}, false
}
