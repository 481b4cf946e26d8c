package services

import (
	"context"
	"log"
	"time"

	"membership-hub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// EnrollmentReportService logs a daily summary of new enrollments (08:30)
type EnrollmentReportService struct {
	memberRepo repositories.MemberRepository
	cron       *cron.Cron
}

// NewEnrollmentReportService creates a new enrollment report service
func NewEnrollmentReportService(memberRepo repositories.MemberRepository) *EnrollmentReportService {
	return &EnrollmentReportService{
		memberRepo: memberRepo,
		cron:       cron.New(),
	}
}

// Start schedules the daily report job
func (s *EnrollmentReportService) Start() {
	s.cron.AddFunc("30 8 * * *", s.reportYesterday)
	s.cron.Start()
	log.Println("🚀 EnrollmentReportService started (daily 08:30)")
}

// Stop stops the scheduler
func (s *EnrollmentReportService) Stop() {
	s.cron.Stop()
	log.Println("🛑 EnrollmentReportService stopped")
}

// reportYesterday counts members enrolled on the previous day
func (s *EnrollmentReportService) reportYesterday() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -1)

	total, err := s.memberRepo.CountByEnrollmentDate(ctx, start, end.Add(-time.Second))
	if err != nil {
		log.Printf("❌ Enrollment report query error: %v", err)
		return
	}

	log.Printf("📋 Enrollment report: %d new members on %s", total, start.Format("2006-01-02"))
}
