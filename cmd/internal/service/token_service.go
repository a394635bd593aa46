package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"smartclinic/cmd/internal/domain/entity"
	"smartclinic/cmd/internal/utils/apierror"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ErrInvalidCredential covers any token that cannot be cryptographically
// verified: malformed, bad signature, or expired.
var ErrInvalidCredential = errors.New("invalid credential")

type AdminRepository interface {
	FindByUsername(username string) (*entity.Admin, error)
}

// AuthorizedAs proves a credential was verified for a role before a mutating
// call. Only Authorize constructs it, so a service method taking AuthorizedAs
// cannot be reached with an unchecked token.
type AuthorizedAs struct {
	Role    Role
	Subject string
}

type DefaultTokenService struct {
	Admins   AdminRepository
	Doctors  DoctorRepository
	Patients PatientRepository
	secret   []byte
	ttl      time.Duration
}

func NewTokenService(admins AdminRepository, doctors DoctorRepository, patients PatientRepository, secret string, ttl time.Duration) *DefaultTokenService {
	return &DefaultTokenService{
		Admins:   admins,
		Doctors:  doctors,
		Patients: patients,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// Generate issues a signed bearer credential for the identity's unique key
// (email, or username for admins).
func (t *DefaultTokenService) Generate(subject string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *DefaultTokenService) ExtractSubject(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredential
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidCredential
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidCredential
	}
	return claims.Subject, nil
}

// Validate fails closed: any parse, signature, or expiry problem yields false,
// as does a subject missing from the role's identity store.
func (t *DefaultTokenService) Validate(token string, role Role) bool {
	subject, err := t.ExtractSubject(token)
	if err != nil {
		return false
	}
	return t.subjectHasRole(subject, role)
}

// subjectHasRole is the single lookup dispatcher over the role-keyed identity
// stores: admins by username, doctors and patients by email. Unknown roles
// never match.
func (t *DefaultTokenService) subjectHasRole(subject string, role Role) bool {
	switch Role(strings.ToLower(string(role))) {
	case RoleAdmin:
		admin, err := t.Admins.FindByUsername(subject)
		return err == nil && admin != nil
	case RoleDoctor:
		doctor, err := t.Doctors.FindByEmail(subject)
		return err == nil && doctor != nil
	case RolePatient:
		patient, err := t.Patients.FindByEmail(subject)
		return err == nil && patient != nil
	default:
		return false
	}
}

func (t *DefaultTokenService) Authorize(token string, role Role) (AuthorizedAs, apierror.ErrorResponse) {
	subject, err := t.ExtractSubject(token)
	if err != nil {
		return AuthorizedAs{}, apierror.InvalidAuthTokenError
	}
	if !t.subjectHasRole(subject, role) {
		return AuthorizedAs{}, apierror.InvalidAuthTokenError
	}
	return AuthorizedAs{Role: Role(strings.ToLower(string(role))), Subject: subject}, nil
}
