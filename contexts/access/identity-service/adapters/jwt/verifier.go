package jwtadapter

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hearth/contexts/access/identity-service/ports"
)

var errUnknownKey = errors.New("signing key not in cached set")

type Config struct {
	Issuer   string
	Audience string
	JWKSURL  string
	// HTTPClient may be nil; a 10s-timeout default client is used.
	HTTPClient *http.Client
}

// Verifier validates RS256 bearer tokens against a JWKS key set fetched from
// the identity provider. Keys are fetched on first need and cached
// process-wide; a token carrying an unknown kid triggers one refresh before
// the verification fails.
type Verifier struct {
	issuer   string
	audience string
	keys     *keyCache
}

func NewVerifier(cfg Config) *Verifier {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Verifier{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		keys: &keyCache{
			url:    cfg.JWKSURL,
			client: client,
		},
	}
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (v *Verifier) Verify(ctx context.Context, raw string) (ports.Claims, error) {
	claims, err := v.parse(ctx, raw)
	if errors.Is(err, errUnknownKey) {
		// Provider may have rotated keys since the last fetch.
		if refreshErr := v.keys.refresh(ctx); refreshErr != nil {
			return ports.Claims{}, refreshErr
		}
		claims, err = v.parse(ctx, raw)
	}
	if err != nil {
		return ports.Claims{}, err
	}
	return claims, nil
}

func (v *Verifier) parse(ctx context.Context, raw string) (ports.Claims, error) {
	parsed := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, parsed, v.keyFunc(ctx),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, errUnknownKey) {
			return ports.Claims{}, errUnknownKey
		}
		return ports.Claims{}, err
	}
	return ports.Claims{
		Subject:     parsed.Subject,
		Email:       parsed.Email,
		DisplayName: parsed.Name,
	}, nil
}

func (v *Verifier) keyFunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, fmt.Errorf("token header missing kid")
		}
		key, err := v.keys.get(ctx, kid)
		if err != nil {
			return nil, err
		}
		return key, nil
	}
}

type keyCache struct {
	url    string
	client *http.Client

	mu      sync.Mutex
	keys    map[string]*rsa.PublicKey
	fetched bool
}

func (c *keyCache) get(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fetched {
		if err := c.fetchLocked(ctx); err != nil {
			return nil, err
		}
	}
	key, ok := c.keys[kid]
	if !ok {
		return nil, errUnknownKey
	}
	return key, nil
}

func (c *keyCache) refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchLocked(ctx)
}

type jwksDocument struct {
	Keys []struct {
		Kty string `json:"kty"`
		Kid string `json:"kid"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (c *keyCache) fetchLocked(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch jwks: unexpected status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, entry := range doc.Keys {
		if entry.Kty != "RSA" || entry.Kid == "" {
			continue
		}
		key, err := rsaKeyFromJWK(entry.N, entry.E)
		if err != nil {
			return fmt.Errorf("parse jwks key %s: %w", entry.Kid, err)
		}
		keys[entry.Kid] = key
	}

	c.keys = keys
	c.fetched = true
	return nil
}

func rsaKeyFromJWK(n string, e string) (*rsa.PublicKey, error) {
	modulus, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, err
	}
	exponent, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, err
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(modulus),
		E: int(new(big.Int).SetBytes(exponent).Int64()),
	}, nil
}
