package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	env := LoadEnv()

	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, 14, env.LoanDurationDays)
	assert.Equal(t, int64(50), env.LateFeePerDay)
	assert.Equal(t, int64(50), env.GatewayMinAmount)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("LOAN_DURATION_DAYS", "7")
	t.Setenv("LATE_FEE_PER_DAY", "25")
	t.Setenv("GATEWAY_MIN_AMOUNT", "100")
	t.Setenv("JWT_SECRET", "test-secret")

	env := LoadEnv()

	assert.Equal(t, ":9090", env.AppAddr)
	assert.Equal(t, 7, env.LoanDurationDays)
	assert.Equal(t, int64(25), env.LateFeePerDay)
	assert.Equal(t, int64(100), env.GatewayMinAmount)
	assert.Equal(t, "test-secret", env.JWTSecret)
}

func TestLoadEnvInvalidValuesFallBack(t *testing.T) {
	t.Setenv("LOAN_DURATION_DAYS", "-3")
	t.Setenv("LATE_FEE_PER_DAY", "0")

	env := LoadEnv()

	assert.Equal(t, 14, env.LoanDurationDays)
	assert.Equal(t, int64(50), env.LateFeePerDay)
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com ,")
	env := LoadEnv()

	origins := env.AllowedOrigins()
	require.Len(t, origins, 2)
	assert.Equal(t, "http://localhost:3000", origins[0])
	assert.Equal(t, "https://app.example.com", origins[1])
}
