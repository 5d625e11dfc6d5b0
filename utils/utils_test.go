package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("s3cret", 7, time.Hour)
	require.NoError(t, err)

	id, err := NewAdminTokenVerifier("s3cret").Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	_, err = NewAdminTokenVerifier("other").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminTokenRejectsExpiredAndNonAdmin(t *testing.T) {
	expired, err := GenerateAdminToken("s3cret", 7, -time.Minute)
	require.NoError(t, err)
	_, err = NewAdminTokenVerifier("s3cret").Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	student, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": 7,
		"role":     "student",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = NewAdminTokenVerifier("s3cret").Verify(student)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewAdminTokenVerifier("").Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	_, ok = BearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
	_, ok = BearerToken("")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2012-05-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2012, 5, 14, 0, 0, 0, 0, time.UTC), d)

	// Late evening west of UTC is still the written day.
	d, err = ParseDate("2012-05-14T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2012, 5, 14, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2012-05-14T01:00:00+05:30")
	require.NoError(t, err)
	assert.True(t, SameDay(d, time.Date(2012, 5, 14, 18, 0, 0, 0, time.UTC)))

	for _, bad := range []string{"", "14/05/2012", "2012-13-01", "2012-05-14Tnope"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}
