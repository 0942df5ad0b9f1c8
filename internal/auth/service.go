package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"etik/internal/operators"
	"etik/internal/shared/config"
	"etik/pkg/logger"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrOperatorNotFound    = errors.New("operator not found")
	ErrOperatorExists      = errors.New("operator already exists")
	ErrAlreadyBootstrapped = errors.New("an owner already exists")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
)

type Service interface {
	// Bootstrap creates the first OWNER; it fails once any operator exists
	Bootstrap(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, operatorID string, req *ChangePasswordRequest) error
	GetOperator(ctx context.Context, operatorID string) (*OperatorResponse, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
}

type service struct {
	repo   Repository
	config *config.Config
	logger *logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, cfg *config.Config, l *logger.Logger) Service {
	return &service{
		repo:   repo,
		config: cfg,
		logger: l,
		now:    time.Now,
	}
}

func (s *service) Bootstrap(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	op, err := newOperator(req, operators.RoleOwner)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateFirstOperator(ctx, op); err != nil {
		return nil, err
	}
	return s.authResponse(op)
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	role := operators.Role(strings.ToUpper(req.Role)) // stored as uppercase enum
	if !operators.IsValidRole(string(role)) {
		role = operators.RoleStaff
	}
	return s.create(ctx, req, role)
}

func (s *service) create(ctx context.Context, req *RegisterRequest, role operators.Role) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrOperatorExists
	}

	op, err := newOperator(req, role)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateOperator(ctx, op); err != nil {
		return nil, err
	}

	return s.authResponse(op)
}

func newOperator(req *RegisterRequest, role operators.Role) (*operators.Operator, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &operators.Operator{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  string(hashedPassword),
		Role:      role,
	}, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	op, err := s.repo.GetOperatorByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, ErrOperatorNotFound) {
			s.logger.LogAuthFailure(ctx, "unknown email", "")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.Password), []byte(req.Password)); err != nil {
		s.logger.LogAuthFailure(ctx, "wrong password", "")
		return nil, ErrInvalidCredentials
	}

	s.logger.LogAuthSuccess(ctx, op.ID.String(), "password")
	return s.authResponse(op)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	// Verify operator still exists; the role may have changed since
	op, err := s.repo.GetOperatorByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrOperatorNotFound
	}

	return s.generateTokenPair(op.ID.String(), op.Email, string(op.Role))
}

func (s *service) ChangePassword(ctx context.Context, operatorID string, req *ChangePasswordRequest) error {
	op, err := s.repo.GetOperatorByID(ctx, operatorID)
	if err != nil {
		return ErrOperatorNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdateOperatorPassword(ctx, operatorID, string(hashedPassword))
}

func (s *service) GetOperator(ctx context.Context, operatorID string) (*OperatorResponse, error) {
	op, err := s.repo.GetOperatorByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	resp := toOperatorResponse(op)
	return &resp, nil
}

func (s *service) ValidateToken(tokenString string) (*JWTClaims, error) {
	return s.validateToken(tokenString)
}

func (s *service) authResponse(op *operators.Operator) (*AuthResponse, error) {
	tokenPair, err := s.generateTokenPair(op.ID.String(), op.Email, string(op.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Operator:     toOperatorResponse(op),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) generateTokenPair(operatorID, email, role string) (*TokenPair, error) {
	now := s.now()

	accessToken, err := s.sign(operatorID, email, role, "access", now, s.config.JWT.JWTExpiresIn)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.sign(operatorID, email, role, "refresh", now, s.config.JWT.RefreshExpiresIn)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.JWTExpiresIn.Seconds()),
	}, nil
}

func (s *service) sign(operatorID, email, role, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := JWTClaims{
		UserID: operatorID,
		Email:  email,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "etik-station",
			Subject:   operatorID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWT.Secret))
}

func (s *service) validateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
