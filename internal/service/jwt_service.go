package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService emite y valida tokens de acceso firmados con HS256.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// Claims transporta la identidad del usuario dentro del token.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

var (
	// ErrTokenInvalid cubre token malformado, firma inválida y expiración.
	// El motivo concreto no se expone al caller.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrSecretMissing indica que falta el secreto de firma (error fatal
	// de configuración, el proceso no debe arrancar).
	ErrSecretMissing = errors.New("jwt secret not configured")
)

func NewJWTService(secret string, ttl time.Duration) (*JWTService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretMissing
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "user-graph",
	}, nil
}

// Issue firma un token de acceso para el usuario indicado.
func (s *JWTService) Issue(userID int64) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify devuelve el id de usuario contenido en el token. Cualquier falla
// (formato, firma, expiración, claims inconsistentes) colapsa en
// ErrTokenInvalid.
func (s *JWTService) Verify(tokenString string) (int64, error) {
	if strings.TrimSpace(tokenString) == "" {
		return 0, ErrTokenInvalid
	}
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return 0, ErrTokenInvalid
	}
	if !s.isValidClaims(claims) {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}

func (s *JWTService) isValidClaims(claims Claims) bool {
	if claims.UserID <= 0 {
		return false
	}
	if claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return false
	}
	return claims.Issuer == s.issuer
}

type authCtxKey struct{}

// ContextWithUserID guarda el id autenticado en el contexto del request.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, authCtxKey{}, userID)
}

// UserIDFromContext recupera el id autenticado; ok=false si el request no
// presentó un token válido.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(authCtxKey{}).(int64)
	return id, ok
}
