package notify

import (
	"context"
	"testing"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMessages(t *testing.T) {
	user := &domain.User{Email: "ana@example.com", Name: "Ana", LastName: "Diaz"}

	m := verificationMessage("http://localhost:8080/", user, "abc")
	assert.Contains(t, m.body, "http://localhost:8080/api/users/verify/abc")
	assert.Contains(t, m.body, "Ana Diaz")

	m = recoveryMessage("http://localhost:8080", &domain.User{Email: "bob@example.com"}, "xyz")
	assert.Contains(t, m.body, "http://localhost:8080/api/users/password/reset/xyz")
	assert.Contains(t, m.body, "bob@example.com")
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := NewLogNotifier("http://site", zap.New(core))

	err := n.SendVerification(context.Background(), &domain.User{Email: "ana@example.com"}, "secret1")
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ana@example.com", fields["to"])
	assert.Contains(t, fields["body"], "/api/users/verify/secret1")
}
