package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// PlanRefresher reprojects stored plans and reports how many changed.
type PlanRefresher interface {
	RefreshPlans() (int, error)
}

// Scheduler runs the plan refresh on a cron schedule.
type Scheduler struct {
	Cron  *cron.Cron
	Plans PlanRefresher
}

// New creates a Scheduler whose specs carry a leading seconds field.
func New(plans PlanRefresher) *Scheduler {
	return &Scheduler{
		Cron:  cron.New(cron.WithSeconds()),
		Plans: plans,
	}
}

// Register schedules the refresh task on spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh task immediately.
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running plan refresh")
	n, err := s.Plans.RefreshPlans()
	if err != nil {
		log.Printf("[ERROR] plan refresh: %v", err)
	}
	log.Printf("[INFO] plan refresh updated %d plan(s)", n)
}
