package cron

import (
	"core/services"
	"log"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron             *cron.Cron
	integrityService *services.IntegrityService
}

func NewScheduler(integrityService *services.IntegrityService) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:             c,
		integrityService: integrityService,
	}
}

// Start initializes and starts all scheduled jobs
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Schedule the integrity audit to run every hour
	// Cron expression: "0 0 * * * *" = at minute 0 of every hour
	_, err := s.cron.AddFunc("0 0 * * * *", s.runIntegrityAudit)
	if err != nil {
		log.Printf("Error scheduling integrity audit job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

// runIntegrityAudit walks every team's snapshot chain and logs violations
func (s *Scheduler) runIntegrityAudit() {
	log.Println("Running integrity audit job...")

	reports, err := s.integrityService.AuditAllTeams()
	if err != nil {
		log.Printf("Error during integrity audit: %v", err)
		return
	}

	broken := 0
	for i := range reports {
		if !reports[i].OK() {
			broken++
		}
	}
	if broken > 0 {
		log.Printf("Integrity audit found violations in %d of %d teams", broken, len(reports))
		return
	}

	log.Println("Integrity audit job completed successfully")
}

// RunNow manually triggers the integrity audit (useful for testing)
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering integrity audit job...")
	s.runIntegrityAudit()
}
