package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when redis is enabled")
	}

	if err := c.Suggestion.validate(); err != nil {
		return fmt.Errorf("suggestion: %w", err)
	}

	return nil
}

func (s *SuggestionConfig) validate() error {
	if s.FollowUpDefaultDays <= 0 {
		return fmt.Errorf("follow_up_default_days must be > 0 (got %d)", s.FollowUpDefaultDays)
	}
	if s.DeadlineFallbackDays <= 0 {
		return fmt.Errorf("deadline_fallback_days must be > 0 (got %d)", s.DeadlineFallbackDays)
	}
	if s.DecisionTimeout <= 0 {
		return fmt.Errorf("decision_timeout must be > 0 (got %v)", s.DecisionTimeout)
	}
	if s.MinConfidence < 0 || s.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be within [0, 1] (got %v)", s.MinConfidence)
	}
	if len(s.DefaultCurrency) != 3 {
		return fmt.Errorf("default_currency must be an ISO 4217 code (got %q)", s.DefaultCurrency)
	}
	s.DefaultCurrency = strings.ToUpper(s.DefaultCurrency)
	return nil
}
