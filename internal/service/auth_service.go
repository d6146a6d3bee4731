package service

import (
	"errors"
	"fmt"
	"strings"

	"fabra/config"
	"fabra/internal/auth"
	"fabra/internal/domain"
	"fabra/internal/models"
	"fabra/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
	ErrInvalidRole  = errors.New("invalid role")
)

type AuthService struct {
	cfg          *config.Config
	employeeRepo *repository.EmployeeRepository
}

func NewAuthService(cfg *config.Config, employeeRepo *repository.EmployeeRepository) *AuthService {
	return &AuthService{cfg: cfg, employeeRepo: employeeRepo}
}

func validRole(role string) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleWorker:
		return true
	}
	return false
}

func (s *AuthService) Register(name, email, password, role string) (*models.Employee, string, string, error) {
	if !validRole(role) {
		return nil, "", "", ErrInvalidRole
	}
	_, err := s.employeeRepo.GetByEmail(email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	e := &models.Employee{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.employeeRepo.Create(e); err != nil {
		return nil, "", "", err
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, e.ID, e.Email, e.Role)
	if err != nil {
		return e, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, e.ID)
	if err != nil {
		return e, access, "", err
	}
	return e, access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.Employee, string, string, error) {
	e, err := s.employeeRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, e.ID, e.Email, e.Role)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, e.ID)
	return e, access, refresh, nil
}

// LoginWithGoogle creates or links an employee by Google ID and returns
// employee + tokens + isNew flag. Brand-new accounts default to WORKER;
// an admin promotes them afterwards.
func (s *AuthService) LoginWithGoogle(googleID, email, name, avatarURL string) (*models.Employee, string, string, bool, error) {
	e, err := s.employeeRepo.GetByGoogleID(googleID)
	if err == nil {
		access, _ := auth.GenerateAccessToken(&s.cfg.JWT, e.ID, e.Email, e.Role)
		refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, e.ID)
		return e, access, refresh, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", false, err
	}
	existing, _ := s.employeeRepo.GetByEmail(email)
	if existing != nil {
		// Link Google to the existing account
		gid := googleID
		existing.GoogleID = &gid
		if avatarURL != "" {
			existing.AvatarURL = avatarURL
		}
		if err := s.employeeRepo.Update(existing); err != nil {
			return nil, "", "", false, err
		}
		access, _ := auth.GenerateAccessToken(&s.cfg.JWT, existing.ID, existing.Email, existing.Role)
		refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, existing.ID)
		return existing, access, refresh, false, nil
	}
	gid := googleID
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	e = &models.Employee{
		Name:      name,
		Email:     email,
		GoogleID:  &gid,
		Role:      domain.RoleWorker,
		AvatarURL: avatarURL,
	}
	if err := s.employeeRepo.Create(e); err != nil {
		return nil, "", "", false, err
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, e.ID, e.Email, e.Role)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, e.ID)
	return e, access, refresh, true, nil
}

// ChangePassword updates the employee's password after verifying the current one.
func (s *AuthService) ChangePassword(employeeID uint, currentPassword, newPassword string) error {
	e, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return ErrInvalidCreds
	}
	if e.PasswordHash == "" {
		return errors.New("account uses Google sign-in; set a password first")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	e.PasswordHash = string(hash)
	return s.employeeRepo.Update(e)
}

func (s *AuthService) RefreshToken(refreshToken string) (access, refresh string, err error) {
	token, err := jwt.ParseWithClaims(refreshToken, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.RefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", auth.ErrInvalidToken
	}
	claims := token.Claims.(*jwt.RegisteredClaims)
	var employeeID uint
	fmt.Sscanf(claims.Subject, "%d", &employeeID)
	e, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return "", "", err
	}
	access, _ = auth.GenerateAccessToken(&s.cfg.JWT, e.ID, e.Email, e.Role)
	refresh, _ = auth.GenerateRefreshToken(&s.cfg.JWT, e.ID)
	return access, refresh, nil
}
