package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskvault/taskvault/internal/shared"
)

// Claims is the JWT payload minted at login: the identity plus the standard
// registered claims (sub, exp, iat, jti).
type Claims struct {
	UserID int64  `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 bearer tokens. The signing secret
// is injected at construction; token validity is determined entirely by
// signature and expiry, so there is no server-side session state.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager constructs a TokenManager around the given secret.
func NewTokenManager(secret []byte) *TokenManager {
	return &TokenManager{secret: secret, now: time.Now}
}

// Issue mints a signed token carrying the identity and an absolute expiry
// of now + ttl. It performs no I/O.
func (m *TokenManager) Issue(username string, userID int64, role Role, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Authenticate validates a bearer token and reconstructs the caller identity.
// An empty token fails with ErrAuthRequired; a token that is malformed,
// expired, signed with a different secret or algorithm, or missing a
// required claim fails with ErrAuthInvalid. Signature verification happens
// before any claim is inspected.
func (m *TokenManager) Authenticate(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, shared.ErrAuthRequired
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return Identity{}, shared.ErrAuthInvalid
	}

	role, ok := ParseRole(claims.Role)
	if claims.Subject == "" || claims.UserID == 0 || !ok {
		return Identity{}, shared.ErrAuthInvalid
	}

	return Identity{Username: claims.Subject, UserID: claims.UserID, Role: role}, nil
}
