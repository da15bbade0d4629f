// Package store persists completed focus-group sessions. Archiving is
// best-effort: sessions are served from the response first and the archive
// exists for later retrieval, so a Redis outage never fails a simulation.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meshai-labs/meshai/internal/metrics"
	"github.com/meshai-labs/meshai/internal/session"
)

const (
	sessionTTL = 7 * 24 * time.Hour
	recentKey  = "sessions:recent"
	recentMax  = 100
)

// SessionSummary is the listing view of an archived session.
type SessionSummary struct {
	SessionID           string  `json:"session_id"`
	CampaignDescription string  `json:"campaign_description"`
	PersonaCount        int     `json:"persona_count"`
	OverallSentiment    float64 `json:"overall_sentiment"`
	Timestamp           string  `json:"timestamp"`
}

// RedisArchive stores session results as JSON blobs keyed by session ID,
// with a sorted set over archive time for recency listings.
type RedisArchive struct {
	client *redis.Client
}

// NewRedisArchive connects and verifies the connection.
func NewRedisArchive(ctx context.Context, redisURL string) (*RedisArchive, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisArchive{client: client}, nil
}

// Client exposes the underlying Redis client for collaborators that share
// the connection, like the rate limiter.
func (a *RedisArchive) Client() *redis.Client {
	return a.client
}

// Close closes the Redis connection.
func (a *RedisArchive) Close() error {
	return a.client.Close()
}

// Ping checks the Redis connection.
func (a *RedisArchive) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// SaveSession archives a completed session and registers it in the recency
// index. Entries expire after a week; the index is trimmed to the newest
// hundred sessions.
func (a *RedisArchive) SaveSession(ctx context.Context, result *session.FocusGroupResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	key := sessionKey(result.SessionID)

	pipe := a.client.Pipeline()
	pipe.Set(ctx, key, data, sessionTTL)
	pipe.ZAdd(ctx, recentKey, redis.Z{
		Score:  float64(now),
		Member: result.SessionID,
	})
	pipe.ZRemRangeByRank(ctx, recentKey, 0, -(recentMax + 1))
	pipe.Expire(ctx, recentKey, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	metrics.SessionsArchived.Inc()
	return nil
}

// GetSession retrieves an archived session. A missing or expired session
// returns nil with no error.
func (a *RedisArchive) GetSession(ctx context.Context, sessionID string) (*session.FocusGroupResult, error) {
	data, err := a.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result session.FocusGroupResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListRecent returns summaries of the most recently archived sessions,
// newest first. Sessions whose blobs have expired are skipped.
func (a *RedisArchive) ListRecent(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 || limit > recentMax {
		limit = recentMax
	}

	ids, err := a.client.ZRevRange(ctx, recentKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, 0, len(ids))
	for _, id := range ids {
		result, err := a.GetSession(ctx, id)
		if err != nil || result == nil {
			continue
		}
		summaries = append(summaries, SessionSummary{
			SessionID:           result.SessionID,
			CampaignDescription: result.CampaignDescription,
			PersonaCount:        len(result.InitialReactions),
			OverallSentiment:    result.FinalSummary.OverallSentiment,
			Timestamp:           result.Timestamp,
		})
	}

	return summaries, nil
}
