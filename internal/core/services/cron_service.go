package services

import (
	"context"
	"log"
	"time"

	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// StalePendingAge is how long past its scheduled date a Pending donation
// may sit before the nightly sweep cancels it as a no-show.
const StalePendingAge = 7 * 24 * time.Hour

// CronService runs scheduled maintenance jobs
type CronService struct {
	donationRepo repositories.DonationRepository
	cron         *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(donationRepo repositories.DonationRepository) *CronService {
	return &CronService{
		donationRepo: donationRepo,
		cron:         cron.New(),
	}
}

// Start registers and launches the scheduled jobs
func (s *CronService) Start() {
	// Nightly no-show sweep at 02:00
	s.cron.AddFunc("0 2 * * *", s.cancelStaleDonations)

	s.cron.Start()
	log.Println("CronService started")
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("CronService stopped")
}

// cancelStaleDonations cancels donations still Pending long after their
// scheduled date.
func (s *CronService) cancelStaleDonations() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-StalePendingAge)
	donations, err := s.donationRepo.ListStalePending(ctx, cutoff)
	if err != nil {
		log.Printf("Stale donation sweep query error: %v", err)
		return
	}

	for _, donation := range donations {
		donation.Status = domain.DonationCancelled
		donation.CompletedDate = nil
		if err := s.donationRepo.Update(ctx, donation); err != nil {
			log.Printf("Stale donation sweep update error (id=%d): %v", donation.ID, err)
			continue
		}
	}

	if len(donations) > 0 {
		log.Printf("Stale donation sweep cancelled %d appointment(s)", len(donations))
	}
}
