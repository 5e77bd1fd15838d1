package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/appointments/models"
)

// Service сервис для работы с записями в админке
type Service struct {
	appointmentRepo AppointmentRepository
	cache           AvailabilityCache
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	cache AvailabilityCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		cache:           cache,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(a), nil
}

// List получает записи с фильтрацией по статусу и периоду
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(list))
	return models.FromDomainAppointmentList(list), nil
}

// Confirm подтверждает запись (Pending -> Confirmed)
func (s *Service) Confirm(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	return s.changeStatus(ctx, id, domain.StatusConfirmed)
}

// Cancel отменяет запись (Pending/Confirmed -> Canceled); время сразу освобождается в календаре
func (s *Service) Cancel(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	return s.changeStatus(ctx, id, domain.StatusCanceled)
}

// Complete отмечает запись выполненной (Confirmed -> Completed)
func (s *Service) Complete(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	return s.changeStatus(ctx, id, domain.StatusCompleted)
}

func (s *Service) changeStatus(ctx context.Context, id int64, next domain.AppointmentStatus) (*models.AppointmentResponse, error) {
	s.logger.Info("changeStatus: appointment id=%d -> %s", id, next)

	var (
		result    *domain.Appointment
		freesTime bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		a, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: changeStatus - get appointment: %v", ErrInternal, err)
		}

		if !a.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, next)
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, next); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: changeStatus - update status: %v", ErrInternal, err)
		}

		freesTime = a.Status.IsActive() && !next.IsActive()
		a.Status = next
		result = a
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			s.logger.Warn("changeStatus: appointment id=%d not found", id)
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("changeStatus: appointment id=%d: %v", id, err)
		default:
			s.logger.Error("changeStatus: appointment id=%d: %v", id, err)
		}
		return nil, err
	}

	if freesTime {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("changeStatus: failed to invalidate availability cache: %v", err)
		}
	}

	s.logger.Info("changeStatus: appointment id=%d is now %s", id, next)
	return models.FromDomainAppointment(result), nil
}
