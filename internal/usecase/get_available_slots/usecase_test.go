package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/availability"
	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
	"github.com/m04kA/SMC-CleaningBooking/pkg/metrics"
	"github.com/m04kA/SMC-CleaningBooking/pkg/ptr"
)

var (
	now   = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	today = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeShiftRepo struct {
	shifts   []*domain.Shift
	err      error
	calls    int
	lastFrom time.Time
	lastTo   time.Time
}

func (r *fakeShiftRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]*domain.Shift, error) {
	r.calls++
	r.lastFrom, r.lastTo = from, to
	return r.shifts, r.err
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (r *fakeAppointmentRepo) ListActiveByDateRange(context.Context, time.Time, time.Time) ([]*domain.Appointment, error) {
	return r.appointments, nil
}

type memoryCache struct {
	gen     int64
	entries map[string][]domain.Slot
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]domain.Slot)}
}

func (c *memoryCache) key(gen int64, date time.Time, minutes int) string {
	return fmt.Sprintf("%d/%s/%d", gen, domain.DayKey(date), minutes)
}

func (c *memoryCache) Generation(context.Context) (int64, error) { return c.gen, nil }

func (c *memoryCache) Get(_ context.Context, gen int64, date time.Time, minutes int) ([]domain.Slot, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	slots, ok := c.entries[c.key(gen, date, minutes)]
	return slots, ok, nil
}

func (c *memoryCache) Set(_ context.Context, gen int64, date time.Time, minutes int, slots []domain.Slot) error {
	c.entries[c.key(gen, date, minutes)] = slots
	return nil
}

type fakeTx struct{}

func (fakeTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func newTestUseCase(t *testing.T, shifts *fakeShiftRepo, appointments *fakeAppointmentRepo, cache SlotsCache) *UseCase {
	t.Helper()
	engine, err := availability.NewEngine(availability.DefaultRules())
	require.NoError(t, err)

	uc := NewUseCase(shifts, appointments, engine, cache, fakeTx{}, metrics.Nop{}, 30, logger.NewNop())
	uc.SetTimeProvider(fixedTime{t: now})
	return uc
}

func starts(slots []domain.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestExecute_DefaultsAndWindow(t *testing.T) {
	shifts := &fakeShiftRepo{shifts: []*domain.Shift{{ID: 1, Date: today, StartTime: "09:00", EndTime: "17:00"}}}
	appointments := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 5, Date: today, StartTime: "11:00", EndTime: "12:00", Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(t, shifts, appointments, newMemoryCache())

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, 120, resp.RequestedMinutes)
	assert.Equal(t, today, resp.From)
	assert.Equal(t, today.AddDate(0, 0, 30), resp.To)
	assert.Equal(t, today, shifts.lastFrom)
	assert.Equal(t, today.AddDate(0, 0, 30), shifts.lastTo)
	assert.Equal(t, []string{"09:00", "12:30", "15:00"}, starts(resp.Slots))
}

func TestExecute_ServiceHoursRounding(t *testing.T) {
	tests := []struct {
		hours float64
		want  int
	}{
		{hours: 2, want: 120},
		{hours: 1.5, want: 90},
		{hours: 2.333, want: 140},
		{hours: 0.01, want: 1},
	}

	for _, tt := range tests {
		uc := newTestUseCase(t, &fakeShiftRepo{}, &fakeAppointmentRepo{}, newMemoryCache())
		resp, err := uc.Execute(context.Background(), &Request{ServiceHours: ptr.Ptr(tt.hours)})
		require.NoError(t, err)
		assert.Equal(t, tt.want, resp.RequestedMinutes, "hours=%v", tt.hours)
		assert.NotNil(t, resp.Slots)
	}
}

func TestExecute_InvalidServiceHours(t *testing.T) {
	for _, hours := range []float64{0, -1, domain.MaxServiceHours + 1} {
		uc := newTestUseCase(t, &fakeShiftRepo{}, &fakeAppointmentRepo{}, newMemoryCache())
		_, err := uc.Execute(context.Background(), &Request{ServiceHours: ptr.Ptr(hours)})
		assert.ErrorIs(t, err, ErrInvalidInput, "hours=%v", hours)
	}
}

func TestExecute_DateAnchor(t *testing.T) {
	t.Run("future date moves window", func(t *testing.T) {
		shifts := &fakeShiftRepo{}
		uc := newTestUseCase(t, shifts, &fakeAppointmentRepo{}, newMemoryCache())
		date := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

		resp, err := uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)
		assert.Equal(t, date, resp.From)
		assert.Equal(t, date, shifts.lastFrom)
	})

	t.Run("past date starts from today", func(t *testing.T) {
		shifts := &fakeShiftRepo{}
		uc := newTestUseCase(t, shifts, &fakeAppointmentRepo{}, newMemoryCache())
		date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

		resp, err := uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)
		assert.Equal(t, today, resp.From)
	})
}

func TestExecute_Cache(t *testing.T) {
	shifts := &fakeShiftRepo{shifts: []*domain.Shift{{ID: 1, Date: today, StartTime: "09:00", EndTime: "17:00"}}}
	cache := newMemoryCache()
	uc := newTestUseCase(t, shifts, &fakeAppointmentRepo{}, cache)

	first, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, 1, shifts.calls)

	// новое поколение: старые записи не читаются
	cache.gen++
	third, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, 2, shifts.calls)
}

func TestExecute_CacheFailureFallsBackToDatabase(t *testing.T) {
	shifts := &fakeShiftRepo{}
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	uc := newTestUseCase(t, shifts, &fakeAppointmentRepo{}, cache)

	_, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, shifts.calls)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("corrupted shift", func(t *testing.T) {
		shifts := &fakeShiftRepo{shifts: []*domain.Shift{{ID: 1, Date: today, StartTime: "17:00", EndTime: "09:00"}}}
		uc := newTestUseCase(t, shifts, &fakeAppointmentRepo{}, newMemoryCache())

		_, err := uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrDataIntegrity)
	})

	t.Run("repository failure", func(t *testing.T) {
		shifts := &fakeShiftRepo{err: errors.New("connection refused")}
		uc := newTestUseCase(t, shifts, &fakeAppointmentRepo{}, newMemoryCache())

		_, err := uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestRules(t *testing.T) {
	uc := newTestUseCase(t, &fakeShiftRepo{}, &fakeAppointmentRepo{}, newMemoryCache())

	assert.Equal(t, &RulesResponse{
		TravelBufferMinutes: 30,
		StepMinutes:         30,
		AnchorMinMinutes:    90,
		LookaheadDays:       30,
		DefaultServiceHours: 2.0,
	}, uc.Rules())
}

func TestRules_ReportsShiftEdgePolicy(t *testing.T) {
	rules := availability.DefaultRules()
	rules.IgnoreShiftEdgeGaps = true
	engine, err := availability.NewEngine(rules)
	require.NoError(t, err)

	uc := NewUseCase(&fakeShiftRepo{}, &fakeAppointmentRepo{}, engine, newMemoryCache(), fakeTx{}, metrics.Nop{}, 30, logger.NewNop())

	assert.True(t, uc.Rules().IgnoreShiftEdgeGaps)
}
