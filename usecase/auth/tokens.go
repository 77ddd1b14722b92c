package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

// TokenConfig controls JWT and refresh grant issuance.
type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (c TokenConfig) withDefaults() TokenConfig {
	if c.AccessTTL <= 0 {
		c.AccessTTL = time.Hour
	}
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = 30 * 24 * time.Hour
	}
	if c.Issuer == "" {
		c.Issuer = "inspectrix"
	}
	return c
}

// Claims carried by every access token.
type Claims struct {
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id,omitempty"`
	jwt.RegisteredClaims
}

func (uc *UseCase) issueAccessToken(user *domain.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(uc.tokens.AccessTTL)
	claims := Claims{
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    uc.tokens.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(uc.tokens.Secret))
	if err != nil {
		return "", time.Time{}, domain.WrapError(domain.ErrCodeInternal, "token signing failed", err)
	}
	return signed, expiresAt, nil
}
