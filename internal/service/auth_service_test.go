package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"skin-analysis/internal/domain"
)

type mockDoctorRepo struct {
	byEmail map[string]domain.Doctor
}

func (m *mockDoctorRepo) GetByID(_ context.Context, id string) (domain.Doctor, error) {
	for _, d := range m.byEmail {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Doctor{}, pgx.ErrNoRows
}

func (m *mockDoctorRepo) GetByEmail(_ context.Context, email string) (domain.Doctor, error) {
	d, ok := m.byEmail[email]
	if !ok {
		return domain.Doctor{}, pgx.ErrNoRows
	}
	return d, nil
}

func TestAuthServiceLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo := &mockDoctorRepo{byEmail: map[string]domain.Doctor{
		"doc@example.com": {ID: "dr-1", Email: "doc@example.com", PasswordHash: string(hash)},
	}}
	svc := NewAuthService(zap.NewNop(), repo)

	doctor, err := svc.Login(context.Background(), "doc@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if doctor.ID != "dr-1" {
		t.Errorf("doctor id = %q", doctor.ID)
	}

	if _, err := svc.Login(context.Background(), "doc@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: %v", err)
	}
}
