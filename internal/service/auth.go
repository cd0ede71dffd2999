package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"SampleBlog/internal/config"
	"SampleBlog/internal/model"
	"SampleBlog/internal/repo"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService — регистрация, вход и выпуск JWT.
type AuthService struct {
	users  repo.UserRepository
	cfg    *config.Config
	logger *zap.SugaredLogger
}

func NewAuthService(users repo.UserRepository, cfg *config.Config, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, cfg: cfg, logger: logger}
}

// Register создаёт пользователя и возвращает токен с публичной проекцией.
// E-mail сравнивается с учётом регистра по уникальному индексу.
func (s *AuthService) Register(ctx context.Context, email, password, username string) (*AuthResponse, error) {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	// bcrypt солит каждый вызов заново: хеши одинаковых паролей различаются
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		// проверку выше может обогнать параллельная регистрация;
		// последнее слово за уникальным индексом
		if repo.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.logger.Infow("user registered", "user_id", user.ID)

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: toUserDTO(user)}, nil
}

// Login проверяет учётные данные. На неизвестный e-mail и на неверный
// пароль отвечает одной и той же ошибкой.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user logged in", "user_id", user.ID)
	return &AuthResponse{Token: token, User: toUserDTO(user)}, nil
}

// GetUserByID возвращает публичную проекцию пользователя.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*UserDTO, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// GenerateToken выпускает подписанный HS256-токен с клеймами
// sub, userId, email, username, jti, iat, exp, iss, aud.
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"userId":   user.ID,
		"email":    user.Email,
		"username": user.Username,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(time.Duration(s.cfg.TokenExpiryMinutes) * time.Minute).Unix(),
		"iss":      s.cfg.JWTIssuer,
		"aud":      s.cfg.JWTAudience,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.AuthSecret))
}
