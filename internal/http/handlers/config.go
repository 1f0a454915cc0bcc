package handlers

import (
	intconfig "github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/config"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/gateway"
)

var (
	cfg           intconfig.Env
	gatewayClient *gateway.Client
)

// Configure wires runtime configuration into the handler package. Must be
// called once before the router starts serving.
func Configure(env intconfig.Env) {
	cfg = env
	gatewayClient = gateway.NewClient(env.GatewayBaseURL, env.GatewaySecretKey)
}
