package events

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lobbyStream  = "lobby:events"
	lobbyGroup   = "lobby:group"
	maxStreamLen = 1000
)

// Publish appends a challenge event to the lobby stream. A missing Redis
// connection downgrades to a no-op so the HTTP path never depends on it.
func Publish(eventType string, payload interface{}) {
	if rdb == nil {
		return
	}
	event, err := NewEvent(eventType, payload)
	if err != nil {
		log.Printf("Error building %s event: %v", eventType, err)
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshalling %s event: %v", eventType, err)
		return
	}
	err = rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: lobbyStream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]interface{}{"data": string(data)},
	}).Err()
	if err != nil {
		log.Printf("Error publishing %s event: %v", eventType, err)
	}
}

// LobbyHub interface for broadcasting events to connected clients
type LobbyHub interface {
	BroadcastEvent(event *Event)
}

// StreamConsumer forwards lobby stream events to the websocket hub using a
// Redis consumer group, so every server instance sees every event once.
type StreamConsumer struct {
	rdb          *redis.Client
	consumerName string
	hub          LobbyHub
}

// NewStreamConsumer creates a new StreamConsumer instance
func NewStreamConsumer(hub LobbyHub) *StreamConsumer {
	if rdb == nil {
		return nil
	}

	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("consumer-%s-%d", hostname, os.Getpid())

	return &StreamConsumer{
		rdb:          rdb,
		consumerName: consumerName,
		hub:          hub,
	}
}

// Start creates the consumer group and begins consuming in a goroutine
func (sc *StreamConsumer) Start() error {
	if sc == nil || sc.rdb == nil {
		return fmt.Errorf("redis client not available")
	}

	err := sc.rdb.XGroupCreateMkStream(ctx, lobbyStream, lobbyGroup, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		log.Printf("Failed to create consumer group %s: %v", lobbyGroup, err)
	}

	go sc.consumeLoop()
	return nil
}

func (sc *StreamConsumer) consumeLoop() {
	for {
		streams, err := sc.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    lobbyGroup,
			Consumer: sc.consumerName,
			Streams:  []string{lobbyStream, ">"},
			Count:    100,
			Block:    time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				if err := sc.processMessage(message); err != nil {
					continue
				}
				sc.rdb.XAck(ctx, lobbyStream, lobbyGroup, message.ID)
			}
		}
	}
}

func (sc *StreamConsumer) processMessage(message redis.XMessage) error {
	eventData, ok := message.Values["data"].(string)
	if !ok {
		return fmt.Errorf("invalid message format: missing data field")
	}

	event, err := UnmarshalEvent(eventData)
	if err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	sc.hub.BroadcastEvent(event)
	return nil
}
