package jwt

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la identidad del llamante.
// Roles y SuperAdmin permiten que los middlewares autoricen sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string   `json:"user_id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	CompanyID  string   `json:"company_id"` // "" si el usuario no tiene empresa
	Roles      []string `json:"roles"`
	SuperAdmin bool     `json:"super_admin"`
}

// Options parámetros de firma y verificación.
type Options struct {
	Secret     string
	Issuer     string
	Audience   string
	ExpMinutes int
}

// Generate firma un token HS256 con los claims de identidad indicados.
// Los claims registrados (iss, aud, sub, iat, exp) se rellenan desde opts.
func Generate(opts Options, identity Claims) (string, error) {
	if opts.Secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := identity
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    opts.Issuer,
		Subject:   identity.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(opts.ExpMinutes) * time.Minute)),
	}
	if opts.Audience != "" {
		claims.Audience = jwt.ClaimStrings{opts.Audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(opts.Secret))
}

// Parse valida firma, emisor, audiencia y expiración y devuelve los claims.
func Parse(opts Options, tokenString string) (*Claims, error) {
	if opts.Secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}
	return parse(opts.Secret, tokenString, parserOpts...)
}

// ParseExpired valida firma, emisor y audiencia pero acepta tokens expirados (renovación).
func ParseExpired(opts Options, tokenString string) (*Claims, error) {
	if opts.Secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	claims, err := parse(opts.Secret, tokenString,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, err
	}
	if opts.Issuer != "" && claims.Issuer != opts.Issuer {
		return nil, fmt.Errorf("jwt: emisor inválido")
	}
	if opts.Audience != "" && !slices.Contains(claims.Audience, opts.Audience) {
		return nil, fmt.Errorf("jwt: audiencia inválida")
	}
	return claims, nil
}

func parse(secret, tokenString string, parserOpts ...jwt.ParserOption) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, parserOpts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("claims inválidos")
	}
	if claims.UserID == "" {
		return nil, errors.New("claims inválidos: user_id vacío")
	}
	return claims, nil
}
