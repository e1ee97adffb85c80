package token

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload: phone, user ID in the subject, and the user's
// current organization. Protected routes read all three straight from the
// token without a database round trip.
type Claims struct {
	Phone string `json:"phone"`
	OrgID uint64 `json:"orgId"`
	jwt.RegisteredClaims
}

// Session is the decoded identity attached to a request.
type Session struct {
	UserID uint64
	Phone  string
	OrgID  uint64
}

// Manager signs and verifies HS256 access tokens.
type Manager struct {
	secret   []byte
	validity time.Duration
}

func NewManager(secret string, validityHours int) *Manager {
	return &Manager{
		secret:   []byte(secret),
		validity: time.Duration(validityHours) * time.Hour,
	}
}

// Issue signs a token for the user's current org context. Callers re-issue
// whenever org-affecting state changes so the client's cached token follows.
func (m *Manager) Issue(userID uint64, phone string, orgID uint64) (string, error) {
	now := time.Now()
	claims := &Claims{
		Phone: phone,
		OrgID: orgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify parses and validates a token and returns the session it carries.
func (m *Manager) Verify(raw string) (*Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Session{
		UserID: userID,
		Phone:  claims.Phone,
		OrgID:  claims.OrgID,
	}, nil
}
