package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", 1)

	raw, err := m.Issue(42, "13800138000", 7)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	session, err := m.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, uint64(42), session.UserID)
	require.Equal(t, "13800138000", session.Phone)
	require.Equal(t, uint64(7), session.OrgID)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	m := NewManager("test-secret", 1)
	other := NewManager("different-secret", 1)

	raw, err := m.Issue(42, "13800138000", 7)
	require.NoError(t, err)

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := &Manager{
		secret:   []byte("test-secret"),
		validity: -time.Hour,
	}

	raw, err := m.Issue(42, "13800138000", 7)
	require.NoError(t, err)

	_, err = m.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", 1)

	_, err := m.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
