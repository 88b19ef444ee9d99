package middleware

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	MaxSubmissions   = 3
	SubmissionWindow = time.Hour
)

// SubmissionLimiter bounds deal submission frequency per user+IP. Every call
// counts as an attempt, whether or not the submission later validates.
type SubmissionLimiter interface {
	Allow(ctx context.Context, userID, ip string) bool
}

// RedisSubmissionLimiter keeps the counter in Redis so the quota is shared
// across server instances. The key is INCRed on each attempt and expires one
// window after the first attempt.
type RedisSubmissionLimiter struct {
	client *redis.Client
}

func NewRedisSubmissionLimiter(client *redis.Client) *RedisSubmissionLimiter {
	return &RedisSubmissionLimiter{client: client}
}

func (l *RedisSubmissionLimiter) Allow(ctx context.Context, userID, ip string) bool {
	key := fmt.Sprintf("submissions:%s_%s", userID, ip)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		// Fail open: an unreachable Redis should not block legitimate submissions.
		log.Printf("Submission limiter: redis INCR failed for %s: %v", key, err)
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, SubmissionWindow).Err(); err != nil {
			log.Printf("Submission limiter: redis EXPIRE failed for %s: %v", key, err)
		}
	}

	return count <= MaxSubmissions
}

type submissionRecord struct {
	count       int
	lastAttempt time.Time
}

// MemorySubmissionLimiter is the single-process fallback used when Redis is not
// configured. The window resets when the last attempt is older than the window.
type MemorySubmissionLimiter struct {
	mu       sync.Mutex
	attempts map[string]*submissionRecord
	now      func() time.Time
}

func NewMemorySubmissionLimiter() *MemorySubmissionLimiter {
	return &MemorySubmissionLimiter{
		attempts: make(map[string]*submissionRecord),
		now:      time.Now,
	}
}

func (l *MemorySubmissionLimiter) Allow(ctx context.Context, userID, ip string) bool {
	key := userID + "_" + ip

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, exists := l.attempts[key]

	if !exists || now.Sub(rec.lastAttempt) > SubmissionWindow {
		l.attempts[key] = &submissionRecord{count: 1, lastAttempt: now}
		return true
	}

	if rec.count >= MaxSubmissions {
		return false
	}

	rec.count++
	rec.lastAttempt = now
	return true
}
