package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/s-kanako/france-keijiban/internal/kv"
	"github.com/s-kanako/france-keijiban/internal/models"
)

const (
	tokenIssuer   = "keijiban-api"
	tokenAudience = "keijiban-client"
	tokenTTL      = 7 * 24 * time.Hour
)

// userRecord is the stored shape of an account. It carries the password
// hash, which models.User deliberately keeps out of JSON.
type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *userRecord) user() *models.User {
	return &models.User{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

// jwtProvider keeps accounts in the keyed store under "user:<email>" and
// signs HS256 tokens with the configured secret.
type jwtProvider struct {
	store  kv.Store
	secret []byte
}

// NewProvider creates an identity provider backed by the given store.
func NewProvider(store kv.Store, secret string) Provider {
	return &jwtProvider{store: store, secret: []byte(secret)}
}

func (p *jwtProvider) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	if email == "" || password == "" || name == "" {
		return nil, models.NewValidationError("Email, password, and name are required")
	}

	key := kv.UserPrefix + email
	if _, exists, err := p.store.Get(ctx, key); err != nil {
		return nil, models.NewInternalError(err)
	} else if exists {
		return nil, models.NewValidationError("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	rec := &userRecord{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := p.store.Set(ctx, key, data); err != nil {
		return nil, models.NewInternalError(err)
	}

	return rec.user(), nil
}

func (p *jwtProvider) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	rec, err := p.lookup(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if rec == nil {
		return "", nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return "", nil, models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := p.generateToken(rec.Email)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}
	return token, rec.user(), nil
}

func (p *jwtProvider) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, models.NewUnauthorizedError("Invalid subject claim")
	}

	rec, err := p.lookup(ctx, sub)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewUnauthorizedError("Unknown account")
	}
	return rec.user(), nil
}

func (p *jwtProvider) lookup(ctx context.Context, email string) (*userRecord, error) {
	data, found, err := p.store.Get(ctx, kv.UserPrefix+email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !found {
		return nil, nil
	}
	rec := &userRecord{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, models.NewInternalError(fmt.Errorf("decode user record: %w", err))
	}
	return rec, nil
}

// generateToken creates a JWT for the given account email.
func (p *jwtProvider) generateToken(email string) (string, error) {
	if len(p.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": fmt.Sprintf("%d-%s", now.Unix(), uuid.NewString()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}
