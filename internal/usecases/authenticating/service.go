package authenticating

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "sales-ledger-api"

// Authenticator controla o acesso com uma única credencial compartilhada
type Authenticator interface {
	EnsureCredential() error
	Login(username, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// EnsureCredential grava a credencial configurada se ela ainda não existir.
// Uma credencial já gravada nunca é sobrescrita.
func (s *Service) EnsureCredential() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Auth.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "erro ao gerar hash da senha")
	}

	user := &domain.User{
		Username:     normalizeUsername(s.cfg.Auth.Username),
		PasswordHash: string(hashedPassword),
	}

	created, err := s.userRepo.CreateUserIfAbsent(user)
	if err != nil {
		return NewAuthError(errors.Wrap(err, "erro ao criar credencial"), apiErrors.ErrDatabaseOperation, "Falha ao gravar credencial inicial")
	}

	if created {
		logrus.WithField("username", user.Username).Info("Credencial compartilhada criada")
	} else {
		logrus.WithField("username", user.Username).Debug("Credencial compartilhada já existente")
	}

	return nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (s *Service) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios")
	}

	user, err := s.userRepo.GetUserByUsername(normalizeUsername(username))
	if err != nil {
		return "", NewAuthError(errors.Wrap(err, "erro ao consultar usuário"), apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	// usuário inexistente e senha errada respondem igual
	if user == nil {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Usuário ou senha incorretos")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Usuário ou senha incorretos")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	tokenID, err := utils.GenerateID()
	if err != nil {
		return "", errors.Wrap(err, "erro ao gerar identificador do token")
	}

	now := s.now()
	claims := domain.Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    tokenIssuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
}
