package cron

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// NewScheduler builds a scheduler holding every registered job. schedules overrides the schedule a
// job registered with, keyed by job name.
func NewScheduler(schedules map[string]string) (*cron.Cron, error) {
	c := cron.New()
	for name, j := range Jobs() {
		sched := j.Schedule
		if s, ok := schedules[name]; ok && s != "" {
			sched = s
		}
		run, jobName := j.Run, name
		if _, err := c.AddFunc(sched, func() {
			log.Printf("cron: running %s", jobName)
			run()
		}); err != nil {
			return nil, fmt.Errorf("register job %s (%q): %w", name, sched, err)
		}
	}
	return c, nil
}

func StartCron(schedules map[string]string) *cron.Cron {
	c, err := NewScheduler(schedules)
	if err != nil {
		log.Fatalf("Failed to start cron: %v", err)
	}
	c.Start()
	return c
}
