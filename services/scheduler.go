package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartExpirySweeper runs the deadline sweep on a fixed interval
func StartExpirySweeper(sweepMinutes int) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Failed to create scheduler: %v", err)
		return
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(time.Duration(sweepMinutes)*time.Minute),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := ExpireOverdueChallenges(ctx); err != nil {
				log.Printf("Expiry sweep failed: %v", err)
			}
		}),
	)
	if err != nil {
		log.Printf("Failed to schedule expiry sweep: %v", err)
	}
}
