package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

func TestAccessTokenClaims(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.orgs.Save(context.Background(), &domain.Organization{ID: "org-9", Name: "Acme"}))

	session, err := f.uc.Register(context.Background(), domain.RegisterData{
		Email:          "dana@acme.test",
		Password:       "sturdy-pass1",
		FirstName:      "Dana",
		LastName:       "Reyes",
		OrganizationID: "org-9",
		Role:           domain.RoleManager,
	})
	require.NoError(t, err)

	var claims Claims
	parsed, err := jwt.ParseWithClaims(session.AccessToken, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, session.User.ID, claims.Subject)
	assert.Equal(t, "inspectrix-test", claims.Issuer)
	assert.Equal(t, string(domain.RoleManager), claims.Role)
	assert.Equal(t, "org-9", claims.OrganizationID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenConfigDefaults(t *testing.T) {
	cfg := TokenConfig{Secret: "s"}.withDefaults()

	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, "inspectrix", cfg.Issuer)
}
