package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"sylt/config"
	"sylt/services/ical"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const (
	TypeCalendarSync    = "calendar:sync"
	TypeCalendarSyncAll = "calendar:sync_all"
)

// CalendarSyncPayload identifies the room whose feeds should be refreshed.
type CalendarSyncPayload struct {
	RoomID string `json:"roomId"`
}

// NewCalendarSyncTask builds a per-room sync task for on-demand enqueueing.
func NewCalendarSyncTask(roomID string) (*asynq.Task, error) {
	payload, err := json.Marshal(CalendarSyncPayload{RoomID: roomID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCalendarSync, payload), nil
}

// InitCalendarSyncWorker runs the async worker and the periodic full-sync
// scheduler in the background.
func InitCalendarSyncWorker(syncer *ical.Syncer) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	client := asynq.NewClient(redisOpts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCalendarSync, handleCalendarSyncTask(syncer))
	mux.HandleFunc(TypeCalendarSyncAll, handleCalendarSyncAllTask(syncer, client))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[CalendarSync] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CalendarSync] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CalendarSync] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	// Periodically enqueue a full sync of every room's external feeds.
	go func() {
		scheduler := asynq.NewScheduler(redisOpts, nil)
		task := asynq.NewTask(TypeCalendarSyncAll, nil)
		if _, err := scheduler.Register(config.AppConfig.ICalSyncInterval, task); err != nil {
			log.Printf("[CalendarSync] ❌ Failed to register sync schedule %q: %v", config.AppConfig.ICalSyncInterval, err)
			return
		}
		if err := scheduler.Run(); err != nil {
			log.Printf("[CalendarSync] ❌ Scheduler stopped: %v", err)
		}
	}()
}

func handleCalendarSyncTask(syncer *ical.Syncer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p CalendarSyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CalendarSync] 🔴 Invalid payload: %v", err)
			return err
		}

		log.Printf("[CalendarSync] 📅 Refreshing feeds for room %s", p.RoomID)
		if err := syncer.SyncRoom(ctx, p.RoomID); err != nil {
			log.Printf("[CalendarSync] ❌ Sync failed for room %s: %v", p.RoomID, err)
			return err
		}
		return nil
	}
}

// handleCalendarSyncAllTask fans out one sync task per room so a slow or
// failing feed only delays its own room.
func handleCalendarSyncAllTask(syncer *ical.Syncer, client *asynq.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		rooms, err := syncer.Rooms.List(ctx)
		if err != nil {
			log.Printf("[CalendarSync] ❌ Failed to list rooms: %v", err)
			return err
		}

		for _, room := range rooms {
			roomTask, err := NewCalendarSyncTask(room.ID)
			if err != nil {
				return err
			}
			if _, err := client.EnqueueContext(ctx, roomTask); err != nil {
				log.Printf("[CalendarSync] ❌ Failed to enqueue sync for room %s: %v", room.ID, err)
				return err
			}
		}

		log.Printf("[CalendarSync] 📅 Enqueued sync for %d rooms", len(rooms))
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[CalendarSync] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
