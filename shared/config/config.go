package config

import (
	"github.com/zeromicro/go-zero/rest"

	"github.com/suleymanmyradov/lingua-gateway/third_party/cache"
	"github.com/suleymanmyradov/lingua-gateway/third_party/database"
)

type Config struct {
	rest.RestConf
	Database database.PostgresConfig
	Redis    cache.RedisConfig
	Auth     AuthConfig
	OAuth    GoogleOAuthConfig
	LLM      LLMConfig
	Cache    CacheConfig
}

// AuthConfig holds the secrets for both the session-token codec and the
// Telegram-style init-data verifier. There is no access/refresh pair here:
// a session token is a single, fixed-lifetime artifact re-issued on login.
type AuthConfig struct {
	SessionSecret string `json:",env=AUTH_SESSION_SECRET"`
	SessionExpire int64  `json:",env=AUTH_SESSION_EXPIRE"` // seconds
	BotToken      string `json:",env=AUTH_BOT_TOKEN,optional"`
}

// GoogleOAuthConfig configures the authorization-code exchange used by
// /auth/login and /auth/callback.
type GoogleOAuthConfig struct {
	ClientID     string `json:",env=GOOGLE_CLIENT_ID"`
	ClientSecret string `json:",env=GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `json:",env=GOOGLE_REDIRECT_URL"`
}

// LLMConfig configures the generative fallback used when the lesson
// catalog has nothing left to offer a user.
type LLMConfig struct {
	APIKey string `json:",env=GEMINI_API_KEY"`
	Model  string `json:",default=gemini-1.5-pro"`
}

// CacheConfig sizes both cache tiers. The far tier deliberately outlives
// the near tier: it exists so a near-tier eviction still avoids a database
// round trip, which only holds if its TTL is longer.
type CacheConfig struct {
	NearCapacity int `json:",default=16000"`
	NearTTL      int `json:",default=10"`  // seconds
	FarTTL       int `json:",default=300"` // seconds
}
