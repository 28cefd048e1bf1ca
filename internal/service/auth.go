package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"todo_webapp/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the verified content of a bearer token.
type Claims struct {
	UserID   int64
	Username string
	Email    string
}

// AuthService handles registration, login and bearer token operations.
type AuthService struct {
	users       domain.UserRepository
	jwtSecret   []byte
	emailDomain string
	tokenTTL    time.Duration
	bcryptCost  int
}

func NewAuthService(users domain.UserRepository, jwtSecret, emailDomain string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		users:       users,
		jwtSecret:   []byte(jwtSecret),
		emailDomain: emailDomain,
		tokenTTL:    tokenTTL,
		bcryptCost:  bcryptCost,
	}
}

// Register creates a new user. The email-domain check runs before anything is
// persisted; the password is stored only as a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email, and password are required", domain.ErrInvalidInput)
	}

	if !strings.HasSuffix(email, s.emailDomain) {
		return nil, fmt.Errorf("%w: email must end with %s", domain.ErrForbidden, s.emailDomain)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed token. Unknown username and
// wrong password both surface as ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

func (s *AuthService) GenerateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseToken validates a token string and returns its claims. Signature,
// expiry and not-before are all checked; any failure is ErrUnauthorized.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	userID, ok := mc["user_id"].(float64)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	username, _ := mc["username"].(string)
	email, _ := mc["email"].(string)

	return &Claims{
		UserID:   int64(userID),
		Username: username,
		Email:    email,
	}, nil
}
