package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/shared/authorization"
)

func TestJWTService_SignAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Sign(42, level.Premium, authorization.RoleUser, time.Hour)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, 3, claims.Rank)

	viewer := claims.Viewer()
	assert.Equal(t, uint(42), viewer.ID)
	assert.Equal(t, level.Premium, viewer.Rank)
	assert.False(t, viewer.IsAdmin())
}

func TestJWTService_Verify_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret")

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				tok, err := NewJWTService("other").Sign(1, level.Member, authorization.RoleUser, time.Hour)
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				tok, err := svc.Sign(1, level.Member, authorization.RoleUser, -time.Minute)
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "no expiry",
			token: func(t *testing.T) string {
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1}).SignedString([]byte("test-secret"))
				require.NoError(t, err)
				return tok
			},
		},
		{
			name:  "garbage",
			token: func(*testing.T) string { return "not-a-token" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token(t))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestClaims_Viewer_UnknownRole(t *testing.T) {
	claims := &Claims{UserID: 3, Rank: 7, Role: "superuser"}
	viewer := claims.Viewer()
	assert.Equal(t, authorization.RoleUser, viewer.Role)
	assert.Equal(t, "Unknown Level", viewer.Rank.Name())
}
