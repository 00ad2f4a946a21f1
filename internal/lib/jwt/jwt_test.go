package jwt_test

import (
	"testing"
	"time"

	appjwt "user_galleries/internal/lib/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func parse(t *testing.T, tokenString string) *jwt.Token {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)

	return token
}

func TestNewToken_RoundTrip(t *testing.T) {
	userID := uuid.New()

	tokenString, err := appjwt.NewToken(userID, secret, time.Hour)
	require.NoError(t, err)

	got, err := appjwt.UserID(parse(t, tokenString))
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestUserID_InvalidClaims(t *testing.T) {
	tests := []struct {
		name  string
		token *jwt.Token
	}{
		{
			name:  "nil token",
			token: nil,
		},
		{
			name:  "not validated",
			token: &jwt.Token{Claims: jwt.MapClaims{"uid": uuid.NewString()}},
		},
		{
			name:  "missing uid",
			token: &jwt.Token{Valid: true, Claims: jwt.MapClaims{}},
		},
		{
			name:  "uid is not a string",
			token: &jwt.Token{Valid: true, Claims: jwt.MapClaims{"uid": 42}},
		},
		{
			name:  "uid is not a uuid",
			token: &jwt.Token{Valid: true, Claims: jwt.MapClaims{"uid": "user-1"}},
		},
		{
			name:  "registered claims",
			token: &jwt.Token{Valid: true, Claims: &jwt.RegisteredClaims{Subject: uuid.NewString()}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := appjwt.UserID(tt.token)
			assert.ErrorIs(t, err, appjwt.ErrInvalidClaims)
		})
	}
}
