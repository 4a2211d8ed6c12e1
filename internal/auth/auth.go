package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/venicelabs/orders/internal/domain"
)

var (
	// ErrInvalidCredentials — неизвестный пользователь или неверный пароль.
	// Наружу обе причины неразличимы.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken — токен не прошёл проверку подписи или срока действия.
	ErrInvalidToken = errors.New("invalid token")
)

const defaultTokenTTL = time.Hour

// Claims — полезная нагрузка токена доступа.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service выпускает и проверяет HS256-токены доступа, сверяя учётные данные
// с хранилищем пользователей.
type Service struct {
	users    domain.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *log.Entry
}

// NewService создаёт сервис аутентификации. Нулевой ttl заменяется часом.
func NewService(users domain.UserRepository, secret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Service{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   log.WithField("component", "auth-service"),
	}
}

// Login сверяет пароль с bcrypt-хэшем и выпускает токен доступа.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Debug("access token issued")
	return token, nil
}

func (s *Service) issueToken(user domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken разбирает токен и возвращает его claims.
// Принимается только HS256; токен с иным алгоритмом отклоняется.
func (s *Service) VerifyToken(tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// HashPassword возвращает bcrypt-хэш пароля; используется при сидировании
// пользователей.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
