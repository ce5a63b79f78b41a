// internal/realtime/redis.go
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// EventsChannel is the redis pub/sub channel registry events land on.
const EventsChannel = "registry:events"

// NewRedis creates a new Redis client
func NewRedis() *redis.Client {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})

	log.Printf("Redis client created (addr: %s)\n", redisAddr)
	return rdb
}

type eventEnvelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// PublishEvent pushes a registry event to redis and the websocket hub.
// Publishing is best-effort and runs only after the core mutation commits.
func PublishEvent(rdb *redis.Client, hub *Hub, eventType string, payload interface{}) {
	env := eventEnvelope{Type: eventType, Payload: payload}

	if hub != nil {
		hub.BroadcastJSON(env)
	}
	if rdb != nil {
		b, err := json.Marshal(env)
		if err != nil {
			log.Printf("Error marshaling event %s: %v", eventType, err)
			return
		}
		if err := rdb.Publish(context.Background(), EventsChannel, b).Err(); err != nil {
			log.Printf("Error publishing event %s: %v", eventType, err)
		}
	}
}
