package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, "campus-events")
	assert.Same(t, m, DefaultJWT())

	tok, exp, err := m.GenerateAccessToken("u1", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 2*time.Second)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "campus-events", claims.Issuer)
}

func TestJWTRejectsForeignAndExpiredTokens(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Minute, "a")
	verifier := NewJWTManager("secret-b", time.Minute, "b")

	tok, _, err := issuer.GenerateAccessToken("u1", "user")
	require.NoError(t, err)
	_, err = verifier.ParseAccessToken(tok)
	assert.Error(t, err)

	expired := NewJWTManager("secret-a", -time.Minute, "a")
	tok, _, err = expired.GenerateAccessToken("u1", "user")
	require.NoError(t, err)
	_, err = expired.ParseAccessToken(tok)
	assert.Error(t, err)

	_, err = issuer.ParseAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { PasswordCost = bcrypt.DefaultCost })

	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, CompareHashAndPassword(hash, "password123"))
	assert.False(t, CompareHashAndPassword(hash, "password124"))
	assert.False(t, CompareHashAndPassword("", "password123"))
}

func TestNewESClientDisabledWithoutAddrs(t *testing.T) {
	c, err := NewESClient(ESOptions{Username: "elastic"})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestClosedPublisherRejectsPublish(t *testing.T) {
	p := &RabbitPublisher{Queue: "emails"}
	p.Close()
	p.Close()

	err := p.PublishJSON(context.Background(), "email.job", map[string]string{"to": "a@kcau.ac.ke"})
	assert.ErrorIs(t, err, ErrPublisherClosed)

	var nilPub *RabbitPublisher
	assert.NotPanics(t, nilPub.Close)
}
