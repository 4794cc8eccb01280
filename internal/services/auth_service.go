package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"telechat/config"
	"telechat/internal/codes"
	"telechat/internal/domain/user"
	"telechat/internal/notify"
	"telechat/internal/repository"
	telechat_errors "telechat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService issues one-time verification codes and exchanges a verified
// code for a user row plus a signed access token.
type AuthService struct {
	userRepo  repository.UserRepository
	codes     codes.Store
	sender    notify.CodeSender
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, codeStore codes.Store, sender notify.CodeSender, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		codes:     codeStore,
		sender:    sender,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type SendCodeResult struct {
	Message   string
	Delivered bool
}

type VerifyResult struct {
	UserID      uuid.UUID
	AccessToken string
	ExpiresIn   int64
}

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

// SendCode issues a fresh code for the identity, overwriting any previous
// one. Without a delivery channel the code is returned inline in Message,
// an intentional fallback for demo deployments.
func (s *AuthService) SendCode(ctx context.Context, phone string) (SendCodeResult, error) {
	if phone == "" {
		return SendCodeResult{}, telechat_errors.ErrInvalidInput
	}

	code, err := generateCode()
	if err != nil {
		return SendCodeResult{}, err
	}

	if err := s.codes.Set(ctx, phone, code); err != nil {
		return SendCodeResult{}, err
	}

	if s.sender != nil && s.sender.CanDeliver(phone) {
		if err := s.sender.SendCode(ctx, phone, code); err != nil {
			return SendCodeResult{}, telechat_errors.ErrServiceUnavailable
		}
		return SendCodeResult{Message: "Код отправлен на email", Delivered: true}, nil
	}

	return SendCodeResult{Message: fmt.Sprintf("SMS код: %s", code), Delivered: false}, nil
}

// VerifyCode consumes the stored code on match, upserts the user row keyed
// by phone and returns a signed access token. A mismatch or a missing code
// yields ErrUnauthorized and leaves any stored code untouched.
func (s *AuthService) VerifyCode(ctx context.Context, phone, code string) (VerifyResult, error) {
	if phone == "" || code == "" {
		return VerifyResult{}, telechat_errors.ErrInvalidInput
	}

	ok, err := s.codes.Verify(ctx, phone, code)
	if err != nil {
		return VerifyResult{}, err
	}
	if !ok {
		return VerifyResult{}, telechat_errors.ErrUnauthorized
	}

	u, err := s.upsertUser(ctx, phone)
	if err != nil {
		return VerifyResult{}, err
	}

	token, expiresIn, err := s.newAccessToken(u.ID)
	if err != nil {
		return VerifyResult{}, err
	}

	return VerifyResult{
		UserID:      u.ID,
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, nil
}

func (s *AuthService) upsertUser(ctx context.Context, phone string) (user.User, error) {
	u, err := s.userRepo.GetByPhone(ctx, phone)
	if err == nil {
		_ = s.userRepo.UpdateLastSeen(ctx, u.ID, time.Now())
		return u, nil
	}
	if !errors.Is(err, telechat_errors.ErrNotFound) {
		return user.User{}, err
	}

	newUser := user.User{
		ID:        uuid.New(),
		Phone:     phone,
		Username:  phone,
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		// Concurrent verify for the same phone can race the insert.
		if errors.Is(err, telechat_errors.ErrAlreadyExists) {
			return s.userRepo.GetByPhone(ctx, phone)
		}
		return user.User{}, err
	}
	return newUser, nil
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, telechat_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, telechat_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, telechat_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, telechat_errors.ErrUnauthorized
	}

	return *claims, nil
}

func (s *AuthService) newAccessToken(userID uuid.UUID) (string, int64, error) {
	now := time.Now()

	claims := AccessClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}

	return signed, int64(s.accessTTL.Seconds()), nil
}

// generateCode returns a 5-digit code in [10000, 99999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+10000), nil
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, telechat_errors.ErrInvalidInput):
		return 400
	case errors.Is(err, telechat_errors.ErrUnauthorized):
		return 401
	case errors.Is(err, telechat_errors.ErrForbidden):
		return 403
	case errors.Is(err, telechat_errors.ErrNotFound):
		return 404
	case errors.Is(err, telechat_errors.ErrAlreadyExists), errors.Is(err, telechat_errors.ErrConflict):
		return 409
	case errors.Is(err, telechat_errors.ErrServiceUnavailable):
		return 503
	default:
		return 500
	}
}

type ctxKey string

var userIDKey ctxKey = "user_id"

func WithUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
