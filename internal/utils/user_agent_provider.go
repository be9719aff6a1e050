package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

import "github.com/oshokin/http-pprint/internal/version"

// UserAgentProvider supplies the User-Agent injected into outgoing requests.
type UserAgentProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
}

// StaticUserAgentProvider always returns the same User-Agent.
type StaticUserAgentProvider struct {
	userAgent string
}

// NewStaticUserAgentProvider creates a provider for userAgent.
// An empty userAgent falls back to the application's own identifier.
func NewStaticUserAgentProvider(userAgent string) UserAgentProvider {
	if userAgent == "" {
		userAgent = version.UserAgent()
	}

	return &StaticUserAgentProvider{userAgent: userAgent}
}

// GetUserAgent returns the configured User-Agent.
func (p *StaticUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}
