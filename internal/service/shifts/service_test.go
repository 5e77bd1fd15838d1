package shifts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	shiftRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/shift"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/shifts/models"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeShiftRepo struct {
	nextID   int64
	items    map[int64]*domain.Shift
	lastFrom time.Time
	lastTo   time.Time
}

func newFakeShiftRepo(items ...*domain.Shift) *fakeShiftRepo {
	r := &fakeShiftRepo{nextID: 100, items: make(map[int64]*domain.Shift)}
	for _, s := range items {
		r.items[s.ID] = s
	}
	return r
}

func (r *fakeShiftRepo) Create(_ context.Context, s *domain.Shift) (*domain.Shift, error) {
	r.nextID++
	s.ID = r.nextID
	r.items[s.ID] = s
	return s, nil
}

func (r *fakeShiftRepo) GetByID(_ context.Context, id int64) (*domain.Shift, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, shiftRepo.ErrShiftNotFound
	}
	return s, nil
}

func (r *fakeShiftRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]*domain.Shift, error) {
	r.lastFrom, r.lastTo = from, to
	out := make([]*domain.Shift, 0)
	for _, s := range r.items {
		if !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return shiftRepo.ErrShiftNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeAppointmentRepo struct {
	busyDays    map[string]bool
	lockedDates []string
}

func (r *fakeAppointmentRepo) LockDate(_ context.Context, date time.Time) error {
	r.lockedDates = append(r.lockedDates, domain.DayKey(date))
	return nil
}

func (r *fakeAppointmentRepo) HasActiveOnDate(_ context.Context, date time.Time) (bool, error) {
	return r.busyDays[domain.DayKey(date)], nil
}

type fakeCache struct{ invalidations int }

func (c *fakeCache) Invalidate(context.Context) error {
	c.invalidations++
	return nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

var (
	now      = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
)

func newTestService(shifts *fakeShiftRepo, appointments *fakeAppointmentRepo, cache *fakeCache) *Service {
	svc := NewService(shifts, appointments, cache, fakeTx{}, logger.NewNop())
	svc.SetTimeProvider(fixedTime{t: now})
	return svc
}

func TestService_Create(t *testing.T) {
	existing := &domain.Shift{ID: 1, Date: tomorrow, StartTime: "09:00", EndTime: "12:00"}

	tests := []struct {
		name    string
		req     models.CreateShiftRequest
		wantErr error
	}{
		{name: "valid after existing", req: models.CreateShiftRequest{Date: "2026-10-17", StartTime: "12:00", EndTime: "17:00"}},
		{name: "end before start", req: models.CreateShiftRequest{Date: "2026-10-17", StartTime: "13:00", EndTime: "9:00"}, wantErr: ErrInvalidInput},
		{name: "overlaps existing", req: models.CreateShiftRequest{Date: "2026-10-17", StartTime: "11:00", EndTime: "15:00"}, wantErr: ErrShiftOverlap},
		{name: "start equals end", req: models.CreateShiftRequest{Date: "2026-10-17", StartTime: "13:00", EndTime: "13:00"}, wantErr: ErrInvalidInput},
		{name: "bad date", req: models.CreateShiftRequest{Date: "17.10.2026", StartTime: "13:00", EndTime: "15:00"}, wantErr: ErrInvalidInput},
		{name: "bad time", req: models.CreateShiftRequest{Date: "2026-10-17", StartTime: "1pm", EndTime: "15:00"}, wantErr: ErrInvalidInput},
		{name: "past date", req: models.CreateShiftRequest{Date: "2026-10-15", StartTime: "09:00", EndTime: "15:00"}, wantErr: ErrDateInPast},
		{name: "today is allowed", req: models.CreateShiftRequest{Date: "2026-10-16", StartTime: "09:00", EndTime: "15:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existingCopy := *existing
			shifts := newFakeShiftRepo(&existingCopy)
			appointments := &fakeAppointmentRepo{}
			cache := &fakeCache{}
			svc := newTestService(shifts, appointments, cache)

			resp, err := svc.Create(context.Background(), &tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, cache.invalidations)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.req.Date, resp.Date)
			assert.Equal(t, []string{tt.req.Date}, appointments.lockedDates)
			assert.Equal(t, 1, cache.invalidations)
		})
	}
}

func TestService_CreateNormalizesTimes(t *testing.T) {
	svc := newTestService(newFakeShiftRepo(), &fakeAppointmentRepo{}, &fakeCache{})

	resp, err := svc.Create(context.Background(), &models.CreateShiftRequest{Date: "2026-10-17", StartTime: "9:00", EndTime: "17:00"})
	require.NoError(t, err)

	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, 480, resp.DurationMinutes)
}

func TestService_Delete(t *testing.T) {
	t.Run("no active appointments", func(t *testing.T) {
		shifts := newFakeShiftRepo(&domain.Shift{ID: 1, Date: tomorrow, StartTime: "09:00", EndTime: "17:00"})
		appointments := &fakeAppointmentRepo{}
		cache := &fakeCache{}
		svc := newTestService(shifts, appointments, cache)

		require.NoError(t, svc.Delete(context.Background(), 1))
		assert.Empty(t, shifts.items)
		assert.Equal(t, []string{"2026-10-17"}, appointments.lockedDates)
		assert.Equal(t, 1, cache.invalidations)
	})

	t.Run("day has active appointments", func(t *testing.T) {
		shifts := newFakeShiftRepo(&domain.Shift{ID: 1, Date: tomorrow, StartTime: "09:00", EndTime: "17:00"})
		appointments := &fakeAppointmentRepo{busyDays: map[string]bool{"2026-10-17": true}}
		cache := &fakeCache{}
		svc := newTestService(shifts, appointments, cache)

		err := svc.Delete(context.Background(), 1)
		assert.ErrorIs(t, err, ErrShiftHasAppointments)
		assert.Len(t, shifts.items, 1)
		assert.Zero(t, cache.invalidations)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(newFakeShiftRepo(), &fakeAppointmentRepo{}, &fakeCache{})
		assert.ErrorIs(t, svc.Delete(context.Background(), 9), ErrShiftNotFound)
	})
}

func TestService_List(t *testing.T) {
	t.Run("defaults to lookahead window from today", func(t *testing.T) {
		shifts := newFakeShiftRepo()
		svc := newTestService(shifts, &fakeAppointmentRepo{}, &fakeCache{})

		_, err := svc.List(context.Background(), &models.ListShiftsRequest{})
		require.NoError(t, err)
		assert.Equal(t, "2026-10-16", domain.DayKey(shifts.lastFrom))
		assert.Equal(t, "2026-11-15", domain.DayKey(shifts.lastTo))
	})

	t.Run("reversed period", func(t *testing.T) {
		svc := newTestService(newFakeShiftRepo(), &fakeAppointmentRepo{}, &fakeCache{})
		from := tomorrow
		to := now
		_, err := svc.List(context.Background(), &models.ListShiftsRequest{From: &from, To: &to})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
