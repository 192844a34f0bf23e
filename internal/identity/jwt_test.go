package identity

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s-kanako/france-keijiban/internal/kv"
	"github.com/s-kanako/france-keijiban/internal/models"
)

const testSecret = "test-secret-key"

func newTestProvider(t *testing.T) Provider {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewProvider(kv.NewRedisStore(client), testSecret)
}

func TestSignUp(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	user, err := p.SignUp(ctx, "kana@example.com", "password123", "Kana")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "kana@example.com", user.Email)
	assert.Equal(t, "Kana", user.Name)
}

func TestSignUpValidation(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	tests := []struct {
		name                   string
		email, password, uname string
	}{
		{"missing email", "", "pw", "n"},
		{"missing password", "e@x.com", "", "n"},
		{"missing name", "e@x.com", "pw", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.SignUp(ctx, tt.email, tt.password, tt.uname)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.SignUp(ctx, "dup@example.com", "password123", "First")
	require.NoError(t, err)

	_, err = p.SignUp(ctx, "dup@example.com", "password456", "Second")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Contains(t, appErr.Message, "already exists")
}

func TestLoginAndVerify(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	created, err := p.SignUp(ctx, "kana@example.com", "password123", "Kana")
	require.NoError(t, err)

	token, user, err := p.Login(ctx, "kana@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, created.ID, user.ID)

	verified, err := p.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, verified.ID)
	assert.Equal(t, "kana@example.com", verified.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.SignUp(ctx, "kana@example.com", "password123", "Kana")
	require.NoError(t, err)

	_, _, err = p.Login(ctx, "kana@example.com", "wrong")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	p := newTestProvider(t)

	_, _, err := p.Login(context.Background(), "nobody@example.com", "pw")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := p.VerifyToken(ctx, token)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := kv.NewRedisStore(client)

	issuer := NewProvider(store, "secret-one")
	verifier := NewProvider(store, "secret-two")
	ctx := context.Background()

	_, err = issuer.SignUp(ctx, "kana@example.com", "password123", "Kana")
	require.NoError(t, err)
	token, _, err := issuer.Login(ctx, "kana@example.com", "password123")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(ctx, token)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}
