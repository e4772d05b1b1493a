// JWT/JWKS-backed TokenValidator. Tokens are verified against a JSON Web Key
// Set fetched from a remote endpoint and refreshed in the background.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// JWKSConfig holds configuration for the JWKS-based validator.
type JWKSConfig struct {
	// JWKSURL is the URL of the JSON Web Key Set endpoint. Required.
	JWKSURL string
	// ExpectedIssuer is the required value of the 'iss' claim. Optional.
	ExpectedIssuer string
	// ExpectedAudience is the required value of the 'aud' claim. Optional.
	ExpectedAudience string
	// ClockSkew is the acceptable drift when validating 'exp' and 'nbf'.
	ClockSkew time.Duration
	// RefreshInterval is how often the key set is refreshed. Defaults to 1h.
	RefreshInterval time.Duration
}

// JWKSTokenValidator implements TokenValidator using a JWKS endpoint.
type JWKSTokenValidator struct {
	config   JWKSConfig
	jwkCache *jwk.Cache
}

// NewJWKSTokenValidator creates a validator and performs the initial key
// fetch so a misconfigured endpoint fails at startup, not on the first call.
func NewJWKSTokenValidator(config JWKSConfig, client *http.Client) (*JWKSTokenValidator, error) {
	if config.JWKSURL == "" {
		return nil, fmt.Errorf("JWKSURL is required in JWKSConfig")
	}
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = time.Hour
	}
	if client == nil {
		client = http.DefaultClient
	}

	cache := jwk.NewCache(context.Background())
	err := cache.Register(config.JWKSURL, jwk.WithMinRefreshInterval(config.RefreshInterval), jwk.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to register JWKS URL %s: %w", config.JWKSURL, err)
	}
	if _, err := cache.Refresh(context.Background(), config.JWKSURL); err != nil {
		return nil, fmt.Errorf("initial JWKS fetch from %s failed: %w", config.JWKSURL, err)
	}

	return &JWKSTokenValidator{config: config, jwkCache: cache}, nil
}

// jwtIdentity implements Identity over JWT claims.
type jwtIdentity struct {
	claims jwt.MapClaims
}

func (p *jwtIdentity) Subject() string {
	sub, _ := p.claims.GetSubject()
	return sub
}

func (p *jwtIdentity) Claims() interface{} { return p.claims }

// ValidateToken implements TokenValidator.
func (v *JWKSTokenValidator) ValidateToken(ctx context.Context, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, v.keyFunc)
	if err != nil {
		return nil, NewNotAuthenticated(fmt.Sprintf("Invalid token format or signature: %v", err), "Bearer")
	}
	if !token.Valid {
		return nil, NewNotAuthenticated("Token is invalid or expired.", "Bearer")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, NewNotAuthenticated("Invalid token claims format.", "Bearer")
	}

	var opts []jwt.ParserOption
	if v.config.ExpectedIssuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.ExpectedIssuer))
	}
	if v.config.ExpectedAudience != "" {
		opts = append(opts, jwt.WithAudience(v.config.ExpectedAudience))
	}
	if v.config.ClockSkew > 0 {
		opts = append(opts, jwt.WithLeeway(v.config.ClockSkew))
	}
	if err := jwt.NewValidator(opts...).Validate(claims); err != nil {
		return nil, NewNotAuthenticated(fmt.Sprintf("Token validation failed: %v", err), "Bearer")
	}

	return &jwtIdentity{claims: claims}, nil
}

// keyFunc resolves the verification key for a token from the cached key set,
// refreshing once when the key id is unknown in case of recent rotation.
func (v *JWKSTokenValidator) keyFunc(token *jwt.Token) (interface{}, error) {
	keySet, err := v.jwkCache.Get(context.Background(), v.config.JWKSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get JWK set from cache: %w", err)
	}

	kid, ok := token.Header["kid"].(string)
	if !ok {
		return nil, fmt.Errorf("JWT header missing 'kid' field")
	}

	key, found := keySet.LookupKeyID(kid)
	if !found {
		if _, err := v.jwkCache.Refresh(context.Background(), v.config.JWKSURL); err != nil {
			return nil, fmt.Errorf("key '%s' not found in JWKS (refresh failed: %v)", kid, err)
		}
		keySet, err = v.jwkCache.Get(context.Background(), v.config.JWKSURL)
		if err != nil {
			return nil, fmt.Errorf("failed to get JWK set after refresh: %w", err)
		}
		key, found = keySet.LookupKeyID(kid)
		if !found {
			return nil, fmt.Errorf("key '%s' not found in JWKS even after refresh", kid)
		}
	}

	var rawKey interface{}
	if err := key.Raw(&rawKey); err != nil {
		return nil, fmt.Errorf("failed to extract raw key material for '%s': %w", kid, err)
	}
	return rawKey, nil
}

var _ TokenValidator = (*JWKSTokenValidator)(nil)
