package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/availability"
	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// UseCase use case для получения свободных слотов на окно дат
type UseCase struct {
	shiftRepo       ShiftRepository
	appointmentRepo AppointmentRepository
	engine          Engine
	cache           SlotsCache
	txManager       TransactionManager
	metrics         Metrics
	lookaheadDays   int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shiftRepo ShiftRepository,
	appointmentRepo AppointmentRepository,
	engine Engine,
	cache SlotsCache,
	txManager TransactionManager,
	metrics Metrics,
	lookaheadDays int,
	logger Logger,
) *UseCase {
	if lookaheadDays <= 0 {
		lookaheadDays = domain.DefaultLookaheadDays
	}
	return &UseCase{
		shiftRepo:       shiftRepo,
		appointmentRepo: appointmentRepo,
		engine:          engine,
		cache:           cache,
		txManager:       txManager,
		metrics:         metrics,
		lookaheadDays:   lookaheadDays,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute считает свободные слоты на [date, date+lookaheadDays]
// Прошедшая дата сдвигается на сегодня: в прошлом бронировать нельзя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	started := time.Now()

	// 1. Валидация входных данных
	minutes, err := requestedMinutes(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Окно дат
	now := uc.timeProvider.Now()
	from := domain.NormalizeDate(now)
	if req.Date != nil && !domain.IsDateInPast(*req.Date, now) {
		from = domain.NormalizeDate(*req.Date)
	}
	to := from.AddDate(0, 0, uc.lookaheadDays)

	uc.logger.Info("GetAvailableSlots: window=%s..%s, minutes=%d", domain.DayKey(from), domain.DayKey(to), minutes)

	// 3. Кеш. Ошибки Redis не ломают запрос, просто считаем заново
	gen, cacheErr := uc.cache.Generation(ctx)
	if cacheErr != nil {
		uc.logger.Warn("GetAvailableSlots: cache generation unavailable: %v", cacheErr)
	} else {
		slots, ok, err := uc.cache.Get(ctx, gen, from, minutes)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: cache read failed: %v", err)
		} else if ok {
			uc.metrics.ObserveAvailability(len(slots), true, time.Since(started))
			return &Response{From: from, To: to, RequestedMinutes: minutes, Slots: slots, Cached: true}, nil
		}
	}

	// 4. Смены и активные записи читаем одним снимком
	var (
		shifts       []*domain.Shift
		appointments []*domain.Appointment
	)
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		shifts, err = uc.shiftRepo.ListByDateRange(txCtx, from, to)
		if err != nil {
			return fmt.Errorf("%w: failed to get shifts: %v", ErrInternal, err)
		}
		appointments, err = uc.appointmentRepo.ListActiveByDateRange(txCtx, from, to)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 5. Расчёт
	slots, err := uc.engine.ComputeAvailableSlots(shifts, appointments, minutes)
	if err != nil {
		if errors.Is(err, availability.ErrMalformedTime) || errors.Is(err, availability.ErrInvalidRange) {
			uc.logger.Error("GetAvailableSlots: corrupted schedule data: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
		}
		uc.logger.Error("GetAvailableSlots: engine error: %v", err)
		return nil, fmt.Errorf("%w: engine error: %v", ErrInternal, err)
	}

	if cacheErr == nil {
		if err := uc.cache.Set(ctx, gen, from, minutes, slots); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache write failed: %v", err)
		}
	}

	uc.metrics.ObserveAvailability(len(slots), false, time.Since(started))
	uc.logger.Info("GetAvailableSlots: %d slots from %d shifts and %d appointments",
		len(slots), len(shifts), len(appointments))

	return &Response{From: from, To: to, RequestedMinutes: minutes, Slots: slots}, nil
}

// Rules параметры расчёта для фронтенда
func (uc *UseCase) Rules() *RulesResponse {
	rules := uc.engine.Rules()
	return &RulesResponse{
		TravelBufferMinutes: rules.TravelBufferMinutes,
		StepMinutes:         rules.StepMinutes,
		AnchorMinMinutes:    rules.AnchorMinMinutes,
		IgnoreShiftEdgeGaps: rules.IgnoreShiftEdgeGaps,
		LookaheadDays:       uc.lookaheadDays,
		DefaultServiceHours: domain.DefaultServiceHours,
	}
}

// SetTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) SetTimeProvider(tp TimeProvider) {
	uc.timeProvider = tp
}
