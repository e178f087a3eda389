package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/havenapp/haven-api/config"
	"github.com/havenapp/haven-api/databases"
	"github.com/havenapp/haven-api/models"
	templates "github.com/havenapp/haven-api/templates/html"
)

// Scheduler handles periodic background jobs for the case workflow
type Scheduler struct {
	cron *cron.Cron
	CDB  databases.CaseDatabase
	conf *config.Config
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cDB databases.CaseDatabase, conf *config.Config) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		CDB:  cDB,
		conf: conf,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	if s.conf.SendgridKey == "" || s.conf.AlertEmailTo == "" {
		zap.S().Info("alert email not configured, scheduler jobs disabled")
		return
	}

	// Email the authority desk a digest of unclosed cases daily at 7 AM UTC
	_, err := s.cron.AddFunc("0 7 * * *", s.sendDailyDigest)
	if err != nil {
		zap.S().Errorw("failed to register daily digest job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Case scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Case scheduler stopped")
}

// sendDailyDigest collects every case that is not yet closed and mails
// the summary to the authority inbox
func (s *Scheduler) sendDailyDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cases, err := s.CDB.List(ctx, "")
	if err != nil {
		zap.S().Errorw("failed to list cases for digest", "error", err)
		return
	}

	open := make([]models.Case, 0, len(cases))
	for _, c := range cases {
		if c.Status != models.StatusClosed {
			open = append(open, c)
		}
	}
	if len(open) == 0 {
		zap.S().Debug("no open cases, skipping digest")
		return
	}

	subject := "Daily Case Digest"
	htmlContent := templates.RenderCaseDigestEmail(open)
	plainText := "Cases awaiting closure: see the authority dashboard."

	if err := s.sendEmail(subject, htmlContent, plainText); err != nil {
		zap.S().Errorw("failed to send daily digest", "error", err)
		return
	}

	zap.S().Infow("Sent daily case digest", "openCases", len(open))
}

func (s *Scheduler) sendEmail(subject, htmlContent, plainText string) error {
	from := mail.NewEmail("Haven Safety Network", "no-reply@havenapp.local")
	to := mail.NewEmail("Authority Desk", s.conf.AlertEmailTo)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(s.conf.SendgridKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
