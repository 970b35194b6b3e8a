package auth

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims are the claims carried by an admin token.
type Claims struct {
	gojwt.RegisteredClaims
	Scope string `json:"scope,omitempty"`
}

// ScopeAdmin is the scope granted by Generate.
const ScopeAdmin = "sse:admin"

// Service signs and parses admin tokens.
type Service struct {
	cfg    Config
	method gojwt.SigningMethod
	now    func() time.Time
}

// NewService creates a Service. Defaults are applied to a copy of cfg;
// Enabled is not required so tokens can be minted for tooling.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	cfg.Enabled = true
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg, method: cfg.signingMethod(), now: time.Now}, nil
}

// Generate issues a token for subject valid for the configured TTL.
func (s *Service) Generate(subject string) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
		Scope: ScopeAdmin,
	}
	if s.cfg.Audience != "" {
		claims.Audience = gojwt.ClaimStrings{s.cfg.Audience}
	}

	signed, err := gojwt.NewWithClaims(s.method, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, expiry, issuer and audience, then returns the
// claims.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("auth: invalid token")
	}
	if claims.Scope != ScopeAdmin {
		return nil, fmt.Errorf("auth: token scope %q not allowed", claims.Scope)
	}
	return claims, nil
}

// Validator adapts Parse to the bearer middleware, exposing the claims as
// a map.
func (s *Service) Validator() func(string) (map[string]any, error) {
	return func(token string) (map[string]any, error) {
		claims, err := s.Parse(token)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"sub":   claims.Subject,
			"iss":   claims.Issuer,
			"scope": claims.Scope,
		}, nil
	}
}

func (s *Service) keyFunc(token *gojwt.Token) (any, error) {
	if token.Method.Alg() != s.method.Alg() {
		return nil, fmt.Errorf("auth: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

func (s *Service) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.method.Alg()}),
		gojwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	if s.cfg.Audience != "" {
		opts = append(opts, gojwt.WithAudience(s.cfg.Audience))
	}
	return opts
}
