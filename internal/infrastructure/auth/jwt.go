package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/work"
	"github.com/atelier-community/atelier/internal/shared/authorization"
	"github.com/atelier-community/atelier/internal/shared/biztime"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the viewer identity issued by the account service.
type Claims struct {
	UserID uint                   `json:"user_id"`
	Rank   int                    `json:"rank"`
	Role   authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Viewer converts the claims into the engine's viewer. Unknown roles are
// treated as regular users.
func (c *Claims) Viewer() *work.Viewer {
	return &work.Viewer{
		ID:   c.UserID,
		Rank: level.Of(c.Rank),
		Role: authorization.ParseUserRole(string(c.Role)),
	}
}

// JWTService verifies HS256 access tokens. Signing exists for tooling and tests;
// tokens are normally issued elsewhere.
type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// Sign issues a token for the given identity valid for ttl
func (s *JWTService) Sign(userID uint, rank level.Rank, role authorization.UserRole, ttl time.Duration) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		UserID: userID,
		Rank:   rank.Int(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
