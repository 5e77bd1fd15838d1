package create_appointment

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/availability"
	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	clientRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
	"github.com/m04kA/SMC-CleaningBooking/pkg/types"
)

var (
	now       = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	bookDay   = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	yesterday = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

// memoryStore смены, записи и клиенты в памяти
type memoryStore struct {
	shifts       []*domain.Shift
	appointments []*domain.Appointment
	clients      map[int64]*domain.Client
	nextID       int64
	lockedDates  []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		shifts:  []*domain.Shift{{ID: 1, Date: bookDay, StartTime: "09:00", EndTime: "17:00"}},
		clients: map[int64]*domain.Client{7: {ID: 7, Name: "Jane", Email: "jane@example.com"}},
	}
}

func (s *memoryStore) LockDate(_ context.Context, date time.Time) error {
	s.lockedDates = append(s.lockedDates, domain.DayKey(date))
	return nil
}

func (s *memoryStore) ListByDate(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, a := range s.appointments {
		if domain.DayKey(a.Date) == domain.DayKey(date) && a.IsActive() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memoryStore) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s.nextID++
	a.ID = s.nextID
	s.appointments = append(s.appointments, a)
	return a, nil
}

func (s *memoryStore) ListByDateRange(_ context.Context, from, to time.Time) ([]*domain.Shift, error) {
	out := make([]*domain.Shift, 0)
	for _, sh := range s.shifts {
		if !sh.Date.Before(from) && !sh.Date.After(to) {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (s *memoryStore) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	c, ok := s.clients[id]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	return c, nil
}

// serialTx выполняет транзакции строго по одной, как advisory-блокировка дня в PostgreSQL
type serialTx struct {
	mu sync.Mutex
}

func (tx *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(ctx)
}

// conflictTx имитирует транзакцию, у которой закончились повторы после 40001
type conflictTx struct {
	code pq.ErrorCode
}

func (tx *conflictTx) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return &pq.Error{Code: tx.code, Message: "could not serialize access due to read/write dependencies among transactions"}
}

type countingCache struct{ invalidations atomic.Int32 }

func (c *countingCache) Invalidate(context.Context) error {
	c.invalidations.Add(1)
	return nil
}

type countingMetrics struct{ conflicts atomic.Int32 }

func (m *countingMetrics) IncBookingConflict() { m.conflicts.Add(1) }

type fixture struct {
	uc      *UseCase
	store   *memoryStore
	cache   *countingCache
	metrics *countingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	engine, err := availability.NewEngine(availability.DefaultRules())
	require.NoError(t, err)

	f := &fixture{store: newMemoryStore(), cache: &countingCache{}, metrics: &countingMetrics{}}
	f.uc = NewUseCase(f.store, f.store, f.store, engine, f.cache, &serialTx{}, f.metrics, logger.NewNop())
	f.uc.SetTimeProvider(fixedTime{t: now})
	return f
}

func request(start, end string) *Request {
	return &Request{
		ClientID:    7,
		ServiceType: "Deep Clean",
		AddOns:      []string{"Inside Fridge"},
		QuotedPrice: 240,
		Date:        bookDay,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), request("9:00", "11:00"))
	require.NoError(t, err)

	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, "1-540", resp.SlotID)
	assert.Equal(t, types.TimeString("09:00"), resp.StartTime)
	assert.Equal(t, 2.0, resp.EstimatedHours)
	assert.Equal(t, []string{"Inside Fridge"}, resp.AddOns)
	assert.Equal(t, []string{"2026-10-20"}, f.store.lockedDates)
	assert.Equal(t, int32(1), f.cache.invalidations.Load())
	assert.Zero(t, f.metrics.conflicts.Load())
}

func TestExecute_KeepsEstimatedHoursWhenGiven(t *testing.T) {
	f := newFixture(t)
	req := request("09:00", "11:00")
	req.EstimatedHours = 1.75

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1.75, resp.EstimatedHours)
}

func TestExecute_SlotNotAvailable(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *memoryStore)
		start string
		end   string
	}{
		{name: "off the step grid", start: "09:15", end: "11:15"},
		{name: "leaves dead gap after shift start", start: "09:30", end: "11:30"},
		{name: "outside shift", start: "16:00", end: "18:00"},
		{name: "no shift that day", setup: func(s *memoryStore) { s.shifts = nil }, start: "09:00", end: "11:00"},
		{
			name: "inside travel buffer of existing booking",
			setup: func(s *memoryStore) {
				s.appointments = append(s.appointments, &domain.Appointment{
					ID: 90, Date: bookDay, StartTime: "09:00", EndTime: "11:00", Status: domain.StatusConfirmed,
				})
			},
			start: "11:00", end: "13:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f.store)
			}
			before := len(f.store.appointments)

			_, err := f.uc.Execute(context.Background(), request(tt.start, tt.end))
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.Len(t, f.store.appointments, before)
			assert.Equal(t, int32(1), f.metrics.conflicts.Load())
			assert.Zero(t, f.cache.invalidations.Load())
		})
	}
}

func TestExecute_SerializationFailureIsSlotConflict(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
	}{
		{name: "serialization failure", code: "40001"},
		{name: "deadlock", code: "40P01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.uc.txManager = &conflictTx{code: tt.code}

			_, err := f.uc.Execute(context.Background(), request("09:00", "11:00"))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.NotErrorIs(t, err, ErrInternal)
			assert.Equal(t, int32(1), f.metrics.conflicts.Load())
			assert.Zero(t, f.cache.invalidations.Load())
		})
	}
}

func TestExecute_CanceledAppointmentFreesTime(t *testing.T) {
	f := newFixture(t)
	f.store.appointments = append(f.store.appointments, &domain.Appointment{
		ID: 90, Date: bookDay, StartTime: "09:00", EndTime: "11:00", Status: domain.StatusCanceled,
	})

	_, err := f.uc.Execute(context.Background(), request("09:00", "11:00"))
	assert.NoError(t, err)
}

func TestExecute_SecondBookingOfSameSlotFails(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), request("12:30", "14:30"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request("12:30", "14:30"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "no client", mutate: func(r *Request) { r.ClientID = 0 }},
		{name: "empty service type", mutate: func(r *Request) { r.ServiceType = "  " }},
		{name: "negative price", mutate: func(r *Request) { r.QuotedPrice = -1 }},
		{name: "negative hours", mutate: func(r *Request) { r.EstimatedHours = -2 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad start", mutate: func(r *Request) { r.StartTime = "9am" }},
		{name: "bad end", mutate: func(r *Request) { r.EndTime = "24:00" }},
		{name: "start equals end", mutate: func(r *Request) { r.EndTime = r.StartTime }},
		{name: "start after end", mutate: func(r *Request) { r.StartTime, r.EndTime = "11:00", "09:00" }},
		{name: "too many add-ons", mutate: func(r *Request) { r.AddOns = make([]string, domain.MaxAddOns+1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := request("09:00", "11:00")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.store.lockedDates)
		})
	}
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture(t)
	req := request("09:00", "11:00")
	req.Date = yesterday

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_UnknownClient(t *testing.T) {
	f := newFixture(t)
	req := request("09:00", "11:00")
	req.ClientID = 404

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

// Параллельные попытки занять пересекающиеся слоты: проходит ровно одна
func TestExecute_ConcurrentBookingsOfOverlappingSlots(t *testing.T) {
	f := newFixture(t)

	// 10:30-12:30 и 11:00-13:00 оба свободны в пустой день, но пересекаются друг с другом
	requests := []*Request{}
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			requests = append(requests, request("10:30", "12:30"))
		} else {
			requests = append(requests, request("11:00", "13:00"))
		}
	}

	var (
		wg         sync.WaitGroup
		succeeded  atomic.Int32
		conflicts  atomic.Int32
		unexpected atomic.Int32
	)
	for _, req := range requests {
		wg.Add(1)
		go func(req *Request) {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), req)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts.Add(1)
			default:
				unexpected.Add(1)
			}
		}(req)
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(9), conflicts.Load())
	assert.Zero(t, unexpected.Load())
	assert.Len(t, f.store.appointments, 1)
}
