package shifts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBooking/internal/availability"
	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	shiftRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/shift"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/shifts/models"
	"github.com/m04kA/SMC-CleaningBooking/pkg/types"
)

// Service сервис управления сменами (рабочими окнами)
type Service struct {
	shiftRepo       ShiftRepository
	appointmentRepo AppointmentRepository
	cache           AvailabilityCache
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса смен
func NewService(
	shiftRepo ShiftRepository,
	appointmentRepo AppointmentRepository,
	cache AvailabilityCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		shiftRepo:       shiftRepo,
		appointmentRepo: appointmentRepo,
		cache:           cache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// List получает смены за период. Без периода отдаёт ближайшие DefaultLookaheadDays дней
func (s *Service) List(ctx context.Context, req *models.ListShiftsRequest) (*models.ShiftListResponse, error) {
	from := domain.NormalizeDate(s.timeProvider.Now())
	if req.From != nil {
		from = domain.NormalizeDate(*req.From)
	}
	to := from.AddDate(0, 0, domain.DefaultLookaheadDays)
	if req.To != nil {
		to = domain.NormalizeDate(*req.To)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end is before start", ErrInvalidInput)
	}

	list, err := s.shiftRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d shifts for %s..%s", len(list), domain.DayKey(from), domain.DayKey(to))
	return models.FromDomainShiftList(list), nil
}

// Create создает смену. Смены одного дня не должны пересекаться
func (s *Service) Create(ctx context.Context, req *models.CreateShiftRequest) (*models.ShiftResponse, error) {
	shift, err := s.parseCreateRequest(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if domain.IsDateInPast(shift.Date, s.timeProvider.Now()) {
		s.logger.Warn("Create: date %s is in the past", domain.DayKey(shift.Date))
		return nil, ErrDateInPast
	}

	var created *domain.Shift
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.appointmentRepo.LockDate(txCtx, shift.Date); err != nil {
			return fmt.Errorf("%w: Create - lock date: %v", ErrInternal, err)
		}

		existing, err := s.shiftRepo.ListByDateRange(txCtx, shift.Date, shift.Date)
		if err != nil {
			return fmt.Errorf("%w: Create - list shifts: %v", ErrInternal, err)
		}
		if err := checkOverlap(shift, existing); err != nil {
			return err
		}

		created, err = s.shiftRepo.Create(txCtx, shift)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrShiftOverlap) {
			s.logger.Warn("Create: %v", err)
		} else {
			s.logger.Error("Create: %v", err)
		}
		return nil, err
	}

	s.invalidate(ctx)

	s.logger.Info("Create: created shift id=%d on %s %s-%s",
		created.ID, domain.DayKey(created.Date), created.StartTime, created.EndTime)
	return models.FromDomainShift(created), nil
}

// Delete удаляет смену, если на её день нет активных записей
// Проверка и удаление идут под блокировкой дня, чтобы не разойтись с параллельным бронированием
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		shift, err := s.shiftRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, shiftRepo.ErrShiftNotFound) {
				return ErrShiftNotFound
			}
			return fmt.Errorf("%w: Delete - get shift: %v", ErrInternal, err)
		}

		if err := s.appointmentRepo.LockDate(txCtx, shift.Date); err != nil {
			return fmt.Errorf("%w: Delete - lock date: %v", ErrInternal, err)
		}

		busy, err := s.appointmentRepo.HasActiveOnDate(txCtx, shift.Date)
		if err != nil {
			return fmt.Errorf("%w: Delete - check appointments: %v", ErrInternal, err)
		}
		if busy {
			return fmt.Errorf("%w: %s", ErrShiftHasAppointments, domain.DayKey(shift.Date))
		}

		if err := s.shiftRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, shiftRepo.ErrShiftNotFound) {
				return ErrShiftNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) || errors.Is(err, ErrShiftHasAppointments) {
			s.logger.Warn("Delete: shift id=%d: %v", id, err)
		} else {
			s.logger.Error("Delete: shift id=%d: %v", id, err)
		}
		return err
	}

	s.invalidate(ctx)

	s.logger.Info("Delete: deleted shift id=%d", id)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate availability cache: %v", err)
	}
}

func (s *Service) parseCreateRequest(req *models.CreateShiftRequest) (*domain.Shift, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}
	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return &domain.Shift{Date: date, StartTime: start, EndTime: end}, nil
}

func checkOverlap(shift *domain.Shift, existing []*domain.Shift) error {
	candidate, err := shiftRange(shift)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, e := range existing {
		r, err := shiftRange(e)
		if err != nil {
			return fmt.Errorf("%w: stored shift id=%d: %v", ErrInternal, e.ID, err)
		}
		if candidate.Overlaps(r) {
			return fmt.Errorf("%w: id=%d %s-%s", ErrShiftOverlap, e.ID, e.StartTime, e.EndTime)
		}
	}
	return nil
}

func shiftRange(s *domain.Shift) (availability.Range, error) {
	start, err := s.StartTime.Minutes()
	if err != nil {
		return availability.Range{}, err
	}
	end, err := s.EndTime.Minutes()
	if err != nil {
		return availability.Range{}, err
	}
	return availability.Range{Start: start, End: end}, nil
}

// SetTimeProvider подменяет источник времени (для тестов)
func (s *Service) SetTimeProvider(tp TimeProvider) {
	s.timeProvider = tp
}

