package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tagged verification failures. Handlers map these onto HTTP statuses.
var (
	ErrMissingCredential   = errors.New("no authorization header")
	ErrMalformedCredential = errors.New("invalid JWT")
	ErrExpired             = errors.New("token expired")
	ErrInsufficientRole    = errors.New("admin role required")
)

// Claims is the subset of token claims the service cares about.
type Claims struct {
	Subject string
	Email   string
	Role    string
}

// Verifier checks bearer tokens for the admin role claim.
//
// With an empty secret the token's claims are decoded and trusted without
// checking the signature, which is only safe when every token reaching the
// service was minted by the trusted auth provider. With a secret set, HS256
// signatures are verified as well.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	v := &Verifier{now: time.Now}
	if secret != "" {
		v.secret = []byte(secret)
	}
	return v
}

// Verify checks the raw token string and returns its claims, or one of the
// tagged failures above.
func (v *Verifier) Verify(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrMissingCredential
	}
	if strings.Count(token, ".") != 2 {
		return Claims{}, ErrMalformedCredential
	}

	claims := jwt.MapClaims{}
	if v.secret == nil {
		_, _, err := jwt.NewParser().ParseUnverified(token, claims)
		if err != nil {
			return Claims{}, ErrMalformedCredential
		}
	} else {
		parsed, err := jwt.NewParser(jwt.WithoutClaimsValidation()).Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return v.secret, nil
		})
		if err != nil {
			return Claims{}, ErrMalformedCredential
		}
		claims = parsed.Claims.(jwt.MapClaims)
	}

	if exp, ok := claims["exp"].(float64); ok {
		if time.Unix(int64(exp), 0).Before(v.now()) {
			return Claims{}, ErrExpired
		}
	}

	c := Claims{Role: roleClaim(claims)}
	if sub, ok := claims["sub"].(string); ok {
		c.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		c.Email = email
	}
	if c.Role != "admin" {
		return Claims{}, ErrInsufficientRole
	}
	return c, nil
}

// roleClaim resolves the role from user-level metadata, falling back to
// app-level metadata, mirroring how the auth provider stamps tokens.
func roleClaim(claims jwt.MapClaims) string {
	for _, key := range []string{"user_metadata", "app_metadata"} {
		meta, ok := claims[key].(map[string]interface{})
		if !ok {
			continue
		}
		if role, ok := meta["role"].(string); ok && role != "" {
			return role
		}
	}
	return ""
}
