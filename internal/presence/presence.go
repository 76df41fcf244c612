// Package presence tracks which users are currently online across all server
// instances, using per-user Redis keys with a TTL as heartbeats.
package presence

import (
	"fmt"
	"time"

	"wagerhub/internal/events"
)

const heartbeatTTL = 60 * time.Second

func userKey(username string) string {
	return fmt.Sprintf("presence:user:%s", username)
}

// Heartbeat marks the user online for the next TTL window
func Heartbeat(username string) {
	rdb := events.GetRedisClient()
	if rdb == nil {
		return
	}
	rdb.Set(events.GetContext(), userKey(username), time.Now().Unix(), heartbeatTTL)
}

// Offline removes the user's presence key immediately
func Offline(username string) {
	rdb := events.GetRedisClient()
	if rdb == nil {
		return
	}
	rdb.Del(events.GetContext(), userKey(username))
}

// Online returns the usernames with a live heartbeat
func Online() ([]string, error) {
	rdb := events.GetRedisClient()
	if rdb == nil {
		return nil, nil
	}
	ctx := events.GetContext()

	var usernames []string
	iter := rdb.Scan(ctx, 0, "presence:user:*", 500).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		usernames = append(usernames, key[len("presence:user:"):])
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return usernames, nil
}
