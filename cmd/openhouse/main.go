package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"openhouse/config"
	emailadapter "openhouse/internal/adapters/email"
	"openhouse/internal/domain"
	"openhouse/internal/monitoring"
	"openhouse/internal/repository/memory"
	"openhouse/internal/repository/postgres"
	"openhouse/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel, os.Stdout)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("open house demo failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: emailadapter.SESConfig{
			Region:             cfg.Mailer.AWSRegion,
			AccessKeyID:        cfg.Mailer.AWSAccessKeyID,
			SecretAccessKey:    cfg.Mailer.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mailer.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}

	deliveryLog := memory.NewDeliveryLogRepository()
	if cfg.DBUrl != "" {
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		deliveryLog = postgres.NewDeliveryLogRepository(db)
		logger.Info("recording deliveries in postgres")
	}

	eventRepo := memory.NewEventRepository()
	visitorRepo := memory.NewVisitorRepository()
	eventSvc := services.NewEventService(eventRepo, visitorRepo, cfg.AttendancePolicy, logger, metrics)
	checkInSvc := services.NewCheckInService(eventRepo, visitorRepo, logger, metrics, nil)
	notifier := services.NewNotifier(logger, metrics)
	delivery := services.NewDeliveryService(mailer, deliveryLog, logger, metrics)

	d, err := seed(ctx, eventSvc, logger)
	if err != nil {
		return err
	}

	open, err := checkInSvc.OpenEvents(ctx)
	if err != nil {
		return err
	}
	for _, e := range open {
		logger.Info("open for check-in", "event_id", e.ID(), "address", e.Address(), "start", e.StartTime().Format("2006-01-02 15:04"))
	}

	kiosk := []domain.CheckInRequest{
		{EventID: d.eventA.ID(), Name: "Bob Visitor", Email: "bob@example.com", Phone: "555-1111", Code: "1111", Consent: true},
		{EventID: d.eventA.ID(), Name: "Dave Visitor", Email: "dave@example.com", Phone: "555-3333", Code: "1111", Consent: true},
		{EventID: d.eventA.ID(), Name: "Grace Walkin", Email: "grace@example.com", Phone: "555-6666", Code: "9999", Consent: true},
		{EventID: d.eventB.ID(), Name: "Eve Visitor", Email: "eve@example.com", Phone: "555-4444", Code: "2222", Consent: true},
	}
	for _, req := range kiosk {
		res, err := checkInSvc.CheckIn(ctx, req)
		if err != nil {
			logger.Info("kiosk", "event_id", req.EventID, "email", req.Email, "result", err.Error())
			continue
		}
		logger.Info("kiosk", "event_id", req.EventID, "email", req.Email, "result", "checked in",
			"visits", len(res.Visitor.CheckInHistory()))
	}

	// Carol's visit to the past event happened before it closed.
	if _, err := eventSvc.Activate(ctx, d.eventC.ID()); err != nil {
		return err
	}
	if _, err := checkInSvc.CheckIn(ctx, domain.CheckInRequest{
		EventID: d.eventC.ID(), Name: "Carol Visitor", Email: "carol@example.com", Phone: "555-2222", Code: "3333",
	}); err != nil {
		return fmt.Errorf("check in past visitor: %w", err)
	}
	if _, err := eventSvc.Close(ctx, d.eventC.ID()); err != nil {
		return err
	}

	events, err := eventSvc.ListEvents(ctx)
	if err != nil {
		return err
	}
	for _, e := range events {
		s := e.Summary()
		logger.Info("rsvp summary", "event_id", s.EventID, "address", s.Address, "state", s.State,
			"capacity", s.Capacity, "attendance", s.Attendance, "attendance_rate", s.AttendanceRate,
			"yes", s.RSVPCounts[domain.RSVPYes], "no", s.RSVPCounts[domain.RSVPNo],
			"maybe", s.RSVPCounts[domain.RSVPMaybe], "no_response", s.RSVPCounts[domain.RSVPNoResponse],
			"invites", s.TotalInvites, "overbooked", s.Overbooked)
	}

	templates := emailadapter.NewTemplateSource()
	subject, body, err := templates.Template(emailadapter.TemplateThankYou)
	if err != nil {
		return err
	}
	thanks, _ := notifier.PrepareMessages(d.eventA, subject, body)
	if err := deliver(ctx, delivery, logger, d.eventA.ID(), thanks); err != nil {
		return err
	}

	subject, body, err = templates.Template(emailadapter.TemplateReminder)
	if err != nil {
		return err
	}
	reminders, _ := notifier.PrepareReminders(d.eventB, subject, body)
	if err := deliver(ctx, delivery, logger, d.eventB.ID(), reminders); err != nil {
		return err
	}

	subject, body, err = templates.Template(emailadapter.TemplateRsvpConfirmation)
	if err != nil {
		return err
	}
	if confirmation, _ := notifier.PrepareRsvpConfirmation(d.eventB, d.frank, domain.RSVPYes, subject, body); confirmation != nil {
		if err := deliver(ctx, delivery, logger, d.eventB.ID(), []domain.Email{*confirmation}); err != nil {
			return err
		}
	}
	return nil
}

func deliver(ctx context.Context, svc domain.DeliveryService, logger *slog.Logger, eventID string, emails []domain.Email) error {
	reports, err := svc.Deliver(ctx, eventID, emails)
	if err != nil {
		return fmt.Errorf("deliver %s messages: %w", eventID, err)
	}
	sent := 0
	for _, r := range reports {
		if r.Status == domain.DeliveryStatusSent {
			sent++
		}
	}
	logger.Info("batch delivered", "event_id", eventID, "prepared", len(emails), "sent", sent)
	return nil
}

type demo struct {
	eventA, eventB, eventC *domain.Event
	frank                  *domain.Visitor
}

// seed builds two agents, three houses and three events: one open, one only
// scheduled, and one closed past event.
func seed(ctx context.Context, svc domain.EventService, logger *slog.Logger) (*demo, error) {
	alice := domain.NewAgent("Alice Agent", "alice@realty.example", "555-0100")
	noah := domain.NewAgent("Noah Agent", "noah@realty.example", "555-0200")

	house1 := domain.NewHouse("123 Main St", 500000, 2000, 3, 2, 1998, "Charming home with open floor plan.")
	house2 := domain.NewHouse("456 Oak Ave", 750000, 2500, 4, 3, 2005, "Luxury home with pool and mountain views.")
	house3 := domain.NewHouse("789 Sunset Blvd", 650000, 2100, 3, 2, 2012, "Modern home near downtown, great for entertaining.")
	alice.AddProperty(house1)
	alice.AddProperty(house2)
	noah.AddProperty(house1)
	noah.AddProperty(house3)

	day := time.Now().Truncate(24 * time.Hour)
	eventA, err := svc.CreateEvent(ctx, alice, house1, day.Add(24*time.Hour+13*time.Hour), 5, 1111)
	if err != nil {
		return nil, fmt.Errorf("create event A: %w", err)
	}
	eventB, err := svc.CreateEvent(ctx, alice, house2, day.Add(48*time.Hour+10*time.Hour+30*time.Minute), 3, 2222)
	if err != nil {
		return nil, fmt.Errorf("create event B: %w", err)
	}
	eventC, err := svc.CreateEvent(ctx, noah, house3, day.Add(-24*time.Hour+14*time.Hour), 10, 3333)
	if err != nil {
		return nil, fmt.Errorf("create event C: %w", err)
	}
	for _, e := range []*domain.Event{eventA, eventB, eventC} {
		if !e.Agent().ValidateEvent(e) {
			logger.Warn("event failed validation", "event_id", e.ID())
		}
	}
	if _, err := svc.Activate(ctx, eventA.ID()); err != nil {
		return nil, err
	}
	if _, err := svc.Activate(ctx, eventC.ID()); err != nil {
		return nil, err
	}
	if _, err := svc.Close(ctx, eventC.ID()); err != nil {
		return nil, err
	}

	bob := domain.NewVisitor("Bob Visitor", "bob@example.com", "555-1111")
	carol := domain.NewVisitor("Carol Visitor", "carol@example.com", "555-2222")
	dave := domain.NewVisitor("Dave Visitor", "dave@example.com", "555-3333")
	eve := domain.NewVisitor("Eve Visitor", "eve@example.com", "555-4444")
	frank := domain.NewVisitor("Frank Visitor", "frank@example.com", "555-5555")
	bob.SetMailingConsent(true)
	dave.SetMailingConsent(true)
	eve.SetMailingConsent(true)

	rsvps := []struct {
		event   *domain.Event
		visitor *domain.Visitor
		status  domain.RSVPStatus
	}{
		{eventA, bob, domain.RSVPYes},
		{eventA, carol, domain.RSVPMaybe},
		{eventA, dave, domain.RSVPNoResponse},
		{eventB, dave, domain.RSVPNo},
		{eventB, eve, domain.RSVPYes},
		{eventB, frank, domain.RSVPYes},
	}
	for _, r := range rsvps {
		if _, _, err := svc.Invite(ctx, r.event.ID(), r.visitor); err != nil {
			return nil, fmt.Errorf("invite %s to %s: %w", r.visitor.Email(), r.event.ID(), err)
		}
		if _, err := svc.SetRsvp(ctx, r.event.ID(), r.visitor, r.status); err != nil {
			return nil, fmt.Errorf("rsvp %s to %s: %w", r.visitor.Email(), r.event.ID(), err)
		}
	}

	// The closed event rejects ledger changes; these are logged and skipped.
	for _, v := range []*domain.Visitor{bob, carol, frank} {
		if _, _, err := svc.Invite(ctx, eventC.ID(), v); err != nil {
			logger.Info("invite rejected", "event_id", eventC.ID(), "email", v.Email(), "reason", err.Error())
		}
	}

	return &demo{eventA: eventA, eventB: eventB, eventC: eventC, frank: frank}, nil
}
