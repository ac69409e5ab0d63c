package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"skin-analysis/internal/domain"
	"skin-analysis/internal/repository"
)

// ErrInvalidCredentials cubre tanto email desconocido como password
// incorrecta: al caller no se le distingue cuál falló.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService valida credenciales de doctores.
type AuthService struct {
	logger  *zap.Logger
	doctors repository.DoctorRepository
}

func NewAuthService(logger *zap.Logger, doctors repository.DoctorRepository) *AuthService {
	return &AuthService{logger: logger, doctors: doctors}
}

// Login verifica email y password contra el hash almacenado.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Doctor, error) {
	doctor, err := s.doctors.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Doctor{}, ErrInvalidCredentials
		}
		return domain.Doctor{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(doctor.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login rejected", zap.String("doctor_id", doctor.ID))
		return domain.Doctor{}, ErrInvalidCredentials
	}
	return doctor, nil
}
