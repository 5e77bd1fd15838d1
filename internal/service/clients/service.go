package clients

import (
	"context"
	"errors"
	"fmt"

	clientRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/clients/models"
)

// Service сервис клиентов
type Service struct {
	clientRepo ClientRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Create регистрирует клиента (публичный эндпоинт калькулятора стоимости)
func (s *Service) Create(ctx context.Context, req *models.CreateClientRequest) (*models.ClientResponse, error) {
	client := req.ToDomain()
	if err := validateClient(client); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		if errors.Is(err, clientRepo.ErrEmailTaken) {
			s.logger.Warn("Create: email %s already registered", client.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created client id=%d", created.ID)
	return models.FromDomainClient(created), nil
}

// GetByID получает клиента по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ClientResponse, error) {
	c, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		s.logger.Error("GetByID: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainClient(c), nil
}

// GetByEmail ищет вернувшегося клиента по email
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.ClientResponse, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	c, err := s.clientRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		s.logger.Error("GetByEmail: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByEmail - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainClient(c), nil
}

// List получает всех клиентов (админка)
func (s *Service) List(ctx context.Context) (*models.ClientListResponse, error) {
	list, err := s.clientRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d clients", len(list))
	return models.FromDomainClientList(list), nil
}
