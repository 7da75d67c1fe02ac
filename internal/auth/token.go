package auth

import (
	"context"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/spec-kit/movie-service/pkg/util"
)

// Sentinel verification failures. Revocation and expiry are terminal for a
// token; the client must authenticate again.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// TokenAuthority issues and verifies signed access tokens and checks the
// revocation set. The signing secret is loaded once at startup and never
// mutated, so concurrent use needs no synchronization.
type TokenAuthority struct {
	secret []byte
	ttl    time.Duration
	store  RevocationStore
}

// NewTokenAuthority builds an authority over the given revocation store.
func NewTokenAuthority(secret string, ttl time.Duration, store RevocationStore) *TokenAuthority {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenAuthority{secret: []byte(secret), ttl: ttl, store: store}
}

// Claims describes the access token payload.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Issue signs a token embedding the subject id and expiry.
func (a *TokenAuthority) Issue(subjectID int64) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(a.ttl)
	claims := &Claims{
		UserID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature, expiry, and revocation-set membership, in that
// order, and returns the embedded subject id. A revocation entry vetoes the
// token regardless of signature correctness.
func (a *TokenAuthority) Verify(ctx context.Context, token string) (int64, error) {
	claims, err := a.parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrInvalidToken
	}

	revoked, err := a.store.Contains(ctx, blacklistKey(token))
	if err != nil {
		return 0, err
	}
	if revoked {
		return 0, ErrTokenRevoked
	}
	return claims.UserID, nil
}

// Revoke inserts a revocation entry whose TTL equals the token's remaining
// lifetime, so the entry self-expires exactly when the token would have.
// Revoking an already-expired or malformed token is a no-op.
func (a *TokenAuthority) Revoke(ctx context.Context, token string) error {
	claims, err := a.parse(token)
	if err != nil {
		return nil
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	return a.store.InsertWithTTL(ctx, blacklistKey(token), remaining)
}

// TTL returns the configured token lifetime.
func (a *TokenAuthority) TTL() time.Duration {
	return a.ttl
}

func (a *TokenAuthority) parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// MapVerifyError converts a verification failure into its client-facing form.
func MapVerifyError(err error) error {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return apperrors.NewDomainError(apperrors.CodeTokenExpired, "token expired", 0, nil)
	case errors.Is(err, ErrTokenRevoked):
		return apperrors.NewDomainError(apperrors.CodeTokenRevoked, "token revoked", 0, nil)
	case errors.Is(err, ErrInvalidToken):
		return apperrors.NewDomainError(apperrors.CodeInvalidToken, "invalid token", 0, nil)
	default:
		return apperrors.NewInternalError(err)
	}
}
