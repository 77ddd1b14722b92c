package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "sturdy-pass1", false},
		{"too short", "ab1", true},
		{"no digit", "onlyletters", true},
		{"no letter", "1234567890", true},
		{"exactly eight", "abcdefg1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsDomainError(err, ErrCodeWeakPassword))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginCredentialsValidate(t *testing.T) {
	assert.Error(t, LoginCredentials{Email: "", Password: "x"}.Validate())
	assert.Error(t, LoginCredentials{Email: "   ", Password: "x"}.Validate())
	assert.Error(t, LoginCredentials{Email: "a@b.com", Password: ""}.Validate())
	assert.NoError(t, LoginCredentials{Email: "a@b.com", Password: "anything"}.Validate())
}

func TestRegisterDataValidate(t *testing.T) {
	base := RegisterData{
		Email:     "inspector@acme.test",
		Password:  "sturdy-pass1",
		FirstName: "Dana",
		LastName:  "Reyes",
	}
	assert.NoError(t, base.Validate())

	noName := base
	noName.FirstName = "  "
	assert.Error(t, noName.Validate())

	weak := base
	weak.Password = "short"
	err := weak.Validate()
	require.Error(t, err)
	assert.True(t, IsDomainError(err, ErrCodeWeakPassword))

	badRole := base
	badRole.Role = Role("wizard")
	assert.Error(t, badRole.Validate())

	withRole := base
	withRole.Role = RoleManager
	assert.NoError(t, withRole.Validate())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestProfileUpdateApply(t *testing.T) {
	first := "Jo"
	org := "org-1"

	update := ProfileUpdate{FirstName: &first, OrganizationID: &org}
	assert.False(t, update.Empty())

	user := User{FirstName: "Old", LastName: "Name", OrganizationID: ""}
	applied := update.Apply(user)

	assert.Equal(t, "Jo", applied.FirstName)
	assert.Equal(t, "Name", applied.LastName)
	assert.Equal(t, "org-1", applied.OrganizationID)
	// Original is untouched.
	assert.Equal(t, "Old", user.FirstName)

	assert.True(t, ProfileUpdate{}.Empty())
}

func TestSessionHasTokens(t *testing.T) {
	empty := Session{}
	assert.False(t, empty.HasTokens())

	full := Session{AccessToken: "a", RefreshToken: "r"}
	assert.True(t, full.HasTokens())
}
