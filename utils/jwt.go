package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/models"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisClient is an optional shared Redis client used for token revocation.
// It will be nil when REDIS_ADDR is not configured; revocation then falls
// back to the revoked_tokens table.
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		var dbn int
		_, _ = fmt.Sscanf(dbStr, "%d", &dbn)
		opts.DB = dbn
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		logrus.WithError(err).Warn("redis ping failed, token revocation falls back to DB")
		return
	}
	RedisClient = rc
}

type contextKey string

const UserIDKey = contextKey("userID")
const UserRoleKey = contextKey("userRole")
const RequestIDKey = contextKey("requestID")

// GenerateAccessToken issues a short-lived HS256 access token carrying the
// account id and role claim.
func GenerateAccessToken(userID uint, role lifecycle.Role) (string, error) {
	expiry := 24 * time.Hour
	if role.IsReviewer() {
		// dashboard sessions are shorter-lived
		expiry = 6 * time.Hour
	}
	return GenerateAccessTokenWithExpiry(userID, role, expiry)
}

// GenerateAccessTokenWithExpiry issues an access token with custom expiry duration
func GenerateAccessTokenWithExpiry(userID uint, role lifecycle.Role, expiry time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	jti, err := generateJTI(32)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"id":   userID,
		"role": string(role),
		"exp":  now.Add(expiry).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  jti,
		"aud":  os.Getenv("JWT_AUD"),
		"iss":  os.Getenv("JWT_ISS"),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken parses and validates an access token: signature
// (HS256 only), exp/nbf, aud/iss when configured, and jti revocation.
func ValidateAccessToken(tokenStr string) (*jwt.Token, jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, nil, errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Require exact HS256 algorithm to avoid algorithm confusion.
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, nil, errors.New("token expired")
		}
		return nil, nil, errors.New("invalid token")
	}
	if !token.Valid {
		return nil, nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return token, nil, errors.New("invalid claims")
	}

	if audEnv := os.Getenv("JWT_AUD"); audEnv != "" {
		if aud, _ := claims.GetAudience(); !containsAudience(aud, audEnv) {
			return token, nil, errors.New("invalid audience")
		}
	}
	if issEnv := os.Getenv("JWT_ISS"); issEnv != "" {
		if iss, _ := claims.GetIssuer(); iss != issEnv {
			return token, nil, errors.New("invalid issuer")
		}
	}

	// jti revocation: Redis blacklist first, revoked_tokens table as fallback.
	// Store outages do not fail authentication.
	if jti, ok := claims["jti"].(string); ok && jti != "" {
		if RedisClient != nil {
			res, err := RedisClient.Get(context.Background(), "jwt:blacklist:"+jti).Result()
			if err == nil && res == "1" {
				return token, nil, errors.New("token revoked")
			}
		} else if database.DB != nil {
			var rec struct {
				ID string `gorm:"primaryKey"`
			}
			if err := database.DB.Table("revoked_tokens").Where("id = ?", jti).First(&rec).Error; err == nil {
				return token, nil, errors.New("token revoked")
			}
		}
	}

	return token, claims, nil
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}

// RevokeJTI inserts a jti into the revocation store. With Redis this is a
// TTL'd key; otherwise a row in revoked_tokens.
func RevokeJTI(jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("empty jti")
	}
	if RedisClient != nil {
		return RedisClient.Set(context.Background(), "jwt:blacklist:"+jti, "1", ttl).Err()
	}
	if database.DB != nil {
		res := database.DB.Exec("INSERT INTO revoked_tokens (id, revoked_at) VALUES (?, ?) ON DUPLICATE KEY UPDATE revoked_at = VALUES(revoked_at)", jti, time.Now())
		return res.Error
	}
	return errors.New("no revocation store configured")
}

// GenerateRefreshToken creates a refresh token row and returns the opaque jti.
func GenerateRefreshToken(userID uint) (string, error) {
	jti, err := generateJTI(48)
	if err != nil {
		return "", err
	}
	rt, err := models.NewRefreshToken(userID, 7)
	if err != nil {
		return "", err
	}
	rt.ID = jti
	if database.DB == nil {
		return "", errors.New("database not initialized")
	}
	if err := database.DB.Create(rt).Error; err != nil {
		return "", err
	}
	return jti, nil
}

// ValidateRefreshToken checks whether a refresh token jti exists in DB and is not expired/revoked
func ValidateRefreshToken(jti string) (*models.RefreshToken, error) {
	if database.DB == nil {
		return nil, errors.New("database not initialized")
	}
	var rt models.RefreshToken
	if err := database.DB.Where("id = ?", jti).First(&rt).Error; err != nil {
		return nil, err
	}
	if rt.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}
	return &rt, nil
}

// ActorFromClaims extracts the acting identity from validated claims.
func ActorFromClaims(claims jwt.MapClaims) (lifecycle.Actor, error) {
	var actor lifecycle.Actor
	rawID, ok := claims["id"]
	if !ok {
		return actor, errors.New("invalid token payload")
	}
	switch v := rawID.(type) {
	case float64:
		actor.ID = uint(v)
	case int:
		actor.ID = uint(v)
	case string:
		var n uint64
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			return actor, errors.New("invalid token payload")
		}
		actor.ID = uint(n)
	default:
		return actor, errors.New("invalid token payload")
	}
	role, _ := claims["role"].(string)
	actor.Role = lifecycle.Role(role)
	return actor, nil
}

// generateJTI creates a URL-safe random identifier used as JWT ID
func generateJTI(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	const hex = "0123456789abcdef"
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = hex[int(b[i])%len(hex)]
	}
	return string(out), nil
}

// GetActor returns the acting identity injected by the auth middleware.
func GetActor(r *http.Request) (lifecycle.Actor, bool) {
	id, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		return lifecycle.Actor{}, false
	}
	role, ok := r.Context().Value(UserRoleKey).(lifecycle.Role)
	if !ok {
		return lifecycle.Actor{}, false
	}
	return lifecycle.Actor{ID: id, Role: role}, true
}

// GetUserID returns the account id injected by the auth middleware.
func GetUserID(r *http.Request) (uint, bool) {
	v := r.Context().Value(UserIDKey)
	id, ok := v.(uint)
	return id, ok
}
