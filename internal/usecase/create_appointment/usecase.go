package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBooking/internal/availability"
	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	clientRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-CleaningBooking/pkg/txmanager"
)

// UseCase use case для создания записи на уборку
type UseCase struct {
	appointmentRepo AppointmentRepository
	shiftRepo       ShiftRepository
	clientRepo      ClientRepository
	engine          Engine
	cache           AvailabilityCache
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	shiftRepo ShiftRepository,
	clientRepo ClientRepository,
	engine Engine,
	cache AvailabilityCache,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		shiftRepo:       shiftRepo,
		clientRepo:      clientRepo,
		engine:          engine,
		cache:           cache,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает запись в статусе Pending.
// Слот, который клиент видел в списке, мог быть занят за это время, поэтому
// внутри сериализуемой транзакции под блокировкой дня расчёт слотов повторяется,
// и запись создаётся, только если точно такой же (start, end) всё ещё свободен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, date=%s, time=%s-%s",
		req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	minutes, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	date := domain.NormalizeDate(req.Date)
	if domain.IsDateInPast(date, uc.timeProvider.Now()) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", domain.DayKey(date))
		return nil, ErrInvalidDate
	}

	estimatedHours := req.EstimatedHours
	if estimatedHours == 0 {
		estimatedHours = float64(minutes) / 60
	}

	// 2. Клиент должен существовать
	if _, err := uc.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	var (
		result *domain.Appointment
		slot   domain.Slot
	)

	// 3. Проверка слота и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Все записи одного дня идут строго по очереди
		if err := uc.appointmentRepo.LockDate(txCtx, date); err != nil {
			return fmt.Errorf("%w: failed to lock date: %w", ErrInternal, err)
		}

		// 3.2. Смены и активные записи на день
		shifts, err := uc.shiftRepo.ListByDateRange(txCtx, date, date)
		if err != nil {
			return fmt.Errorf("%w: failed to get shifts: %w", ErrInternal, err)
		}
		appointments, err := uc.appointmentRepo.ListByDate(txCtx, date)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		// 3.3. Повторный расчёт: слот должен быть среди свободных прямо сейчас
		slots, err := uc.engine.ComputeAvailableSlots(shifts, appointments, minutes)
		if err != nil {
			return fmt.Errorf("%w: engine error: %v", ErrInternal, err)
		}

		found, ok := availability.FindSlot(slots, date, req.StartTime, req.EndTime)
		if !ok {
			return ErrSlotNotAvailable
		}
		slot = found

		// 3.4. Создаем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientID:       req.ClientID,
			ServiceType:    req.ServiceType,
			AddOns:         req.AddOns,
			QuotedPrice:    req.QuotedPrice,
			EstimatedHours: estimatedHours,
			Status:         domain.StatusPending,
			Date:           date,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Повторы исчерпаны: параллельная запись на тот же день победила
		if txmanager.IsRetryable(err) {
			err = fmt.Errorf("%w: concurrent booking on %s: %v", ErrSlotNotAvailable, domain.DayKey(date), err)
		}
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.IncBookingConflict()
			uc.logger.Warn("CreateAppointment: slot %s %s-%s is no longer available",
				domain.DayKey(date), req.StartTime, req.EndTime)
			return nil, err
		}
		uc.logger.Error("CreateAppointment: %v", err)
		return nil, err
	}

	// 4. Сбрасываем кеш слотов
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("CreateAppointment: failed to invalidate availability cache: %v", err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d in slot %s", result.ID, slot.ID)

	// Конвертируем в response
	return &Response{
		ID:             result.ID,
		ClientID:       result.ClientID,
		ServiceType:    result.ServiceType,
		AddOns:         result.AddOns,
		QuotedPrice:    result.QuotedPrice,
		EstimatedHours: result.EstimatedHours,
		Status:         string(result.Status),
		Date:           result.Date,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		SlotID:         slot.ID,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

// SetTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) SetTimeProvider(tp TimeProvider) {
	uc.timeProvider = tp
}
