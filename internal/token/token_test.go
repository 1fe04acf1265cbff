package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/token"
)

func newManager() *token.Manager {
	return token.NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestIssueAndVerifyPair(t *testing.T) {
	m := newManager()

	pair, err := m.IssuePair(42, domain.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := m.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, domain.RoleManager, claims.Role)

	claims, err = m.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	m := newManager()

	pair, err := m.IssuePair(1, domain.RoleMember)
	require.NoError(t, err)

	_, err = m.VerifyAccess(pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = m.VerifyRefresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestExpiredTokenMessage(t *testing.T) {
	m := token.NewManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	pair, err := m.IssuePair(1, domain.RoleMember)
	require.NoError(t, err)

	_, err = m.VerifyAccess(pair.AccessToken)
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
	assert.Contains(t, err.Error(), "expired")
}

func TestGarbageToken(t *testing.T) {
	m := newManager()

	_, err := m.VerifyAccess("not.a.jwt")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	other := token.NewManager("other-access", "other-refresh", 15*time.Minute, time.Hour)

	pair, err := other.IssuePair(9, domain.RoleAdmin)
	require.NoError(t, err)

	_, err = newManager().VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
}
