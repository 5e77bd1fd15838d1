package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	adminRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/admin"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/auth/models"
)

const (
	tokenType         = "Bearer"
	minPasswordLength = 8
)

// Config параметры выдачи токенов
type Config struct {
	Secret   string
	TokenTTL time.Duration
	Issuer   string
}

// Claims данные в токене администратора; Subject = ID администратора
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service аутентификация администраторов
type Service struct {
	adminRepo    AdminRepository
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(adminRepo AdminRepository, cfg Config, logger Logger) *Service {
	return &Service{
		adminRepo:    adminRepo,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Login проверяет пароль и выдаёт подписанный HS256 токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			s.logger.Warn("Login: unknown email %s", req.Email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for admin id=%d", admin.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(admin)
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin id=%d logged in", admin.ID)
	return &models.LoginResponse{
		ID:        admin.ID,
		Name:      admin.Name,
		Email:     admin.Email,
		Token:     token,
		TokenType: tokenType,
		ExpiresIn: int64(s.cfg.TokenTTL.Seconds()),
	}, nil
}

// ParseToken проверяет подпись и срок действия токена, возвращает ID администратора
func (s *Service) ParseToken(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithTimeFunc(s.timeProvider.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	adminID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || adminID <= 0 {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}

	return adminID, nil
}

// Register создает администратора с bcrypt-хешем пароля
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*domain.Admin, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	admin, err := s.adminRepo.Create(ctx, &domain.Admin{Name: name, Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, adminRepo.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: created admin id=%d", admin.ID)
	return admin, nil
}

func (s *Service) issueToken(admin *domain.Admin) (string, error) {
	now := s.timeProvider.Now()
	claims := &Claims{
		Email: admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(admin.ID, 10),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

// SetTimeProvider подменяет источник времени (для тестов)
func (s *Service) SetTimeProvider(tp TimeProvider) {
	s.timeProvider = tp
}
