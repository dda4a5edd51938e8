package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wirechat-ircd/internal/auth"
	"github.com/vovakirdan/wirechat-ircd/internal/config"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return strings.TrimSpace(out.String())
}

func TestHashPasswordCommand(t *testing.T) {
	hash := run(t, "hash-password", "hunter2")
	require.NoError(t, auth.ComparePassword(hash, "hunter2"))
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("WIRECHAT_JWT_SECRET", "cli-secret")
	path := filepath.Join(t.TempDir(), "config.yaml")

	token := run(t, "token", "--config", path, "--subject", "ops")

	cfg := config.Default()
	claims, err := auth.ValidateToken(&auth.JWTConfig{
		Secret:   []byte("cli-secret"),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	}, token)
	require.NoError(t, err)
	require.Equal(t, "ops", claims.Subject)
	require.Equal(t, auth.RoleAdmin, claims.Role)
}
