package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RateLimiterConfig holds configuration for chat rate limiting
type RateLimiterConfig struct {
	MessagesPerMinute int // Max chat messages per session per minute
	BurstSize         int // Allow burst of N requests
}

// TokenBucket implements a token bucket rate limiter
type TokenBucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

func NewTokenBucket(maxTokens float64, refillRate float64) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow checks if a request can proceed and consumes a token if so
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens = min(tb.maxTokens, tb.tokens+(elapsed*tb.refillRate))
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// SessionRateLimiter throttles chat messages per session. Every chat message
// costs two upstream LLM calls, so this sits in front of /chat.
type SessionRateLimiter struct {
	config  RateLimiterConfig
	buckets map[uuid.UUID]*TokenBucket
	mu      sync.Mutex
	logger  *zap.Logger
}

func NewSessionRateLimiter(config RateLimiterConfig, logger *zap.Logger) *SessionRateLimiter {
	return &SessionRateLimiter{
		config:  config,
		buckets: make(map[uuid.UUID]*TokenBucket),
		logger:  logger,
	}
}

// AllowMessage checks if a message can be sent for the given session
func (srl *SessionRateLimiter) AllowMessage(sessionID uuid.UUID) bool {
	srl.mu.Lock()
	bucket, exists := srl.buckets[sessionID]
	if !exists {
		refillRate := float64(srl.config.MessagesPerMinute) / 60.0
		bucket = NewTokenBucket(float64(srl.config.BurstSize), refillRate)
		srl.buckets[sessionID] = bucket
	}
	// Keep the map from growing without bound
	if len(srl.buckets) > 10000 {
		srl.logger.Info("Clearing rate limiter cache", zap.Int("buckets", len(srl.buckets)))
		srl.buckets = map[uuid.UUID]*TokenBucket{sessionID: bucket}
	}
	srl.mu.Unlock()

	return bucket.Allow()
}

// RateLimitMiddleware creates a Gin middleware for chat rate limiting.
// SessionMiddleware must run first.
func RateLimitMiddleware(limiter *SessionRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionIDValue, exists := c.Get("sessionID")
		if !exists {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "session not initialized"})
			return
		}
		sessionID := sessionIDValue.(uuid.UUID)

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.config.BurstSize))

		if !limiter.AllowMessage(sessionID) {
			limiter.logger.Warn("Rate limit exceeded",
				zap.String("session_id", sessionID.String()),
				zap.Int("limit", limiter.config.MessagesPerMinute))
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
