package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"DBWidget/internal/calculator"
	"DBWidget/internal/collector"
	"DBWidget/internal/metrics"
	"DBWidget/internal/model"
	"DBWidget/internal/notifier"
	"DBWidget/internal/recorder"
	"DBWidget/internal/state"
	"DBWidget/internal/widget"
)

const sendRetries = 3

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	State     *state.Manager
	Notifier  notifier.Sender // nil when Telegram is not configured
	Recorder  recorder.Recorder
	Metrics   *metrics.Manager
	Location  *time.Location
	Ctx       context.Context
	Now       func() time.Time

	// refreshMu serialises refreshes from cron and from /refresh.
	refreshMu sync.Mutex
}

// NewScheduler creates a new Scheduler running in loc.
func NewScheduler(ctx context.Context, col *collector.Collector, st *state.Manager, sender notifier.Sender,
	rec recorder.Recorder, m *metrics.Manager, loc *time.Location) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Collector: col,
		State:     st,
		Notifier:  sender,
		Recorder:  rec,
		Metrics:   m,
		Location:  loc,
		Ctx:       ctx,
		Now:       time.Now,
	}
}

// RegisterAll registers the refresh and shift-banner tasks.
func (s *Scheduler) RegisterAll(refreshCron, bannerCron string) error {
	skip := cron.NewChain(cron.SkipIfStillRunning(cron.PrintfLogger(log.StandardLogger())))
	if _, err := s.Cron.AddJob(refreshCron, skip.Then(cron.FuncJob(s.refreshTask))); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(bannerCron, s.bannerTask); err != nil {
		return fmt.Errorf("register banner task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.WithField("zone", s.Location.String()).Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately.
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	log.Debug("[CRON] running refresh task")
	prev := s.State.LastData()

	start := time.Now()
	evt := s.Collector.Collect(s.Ctx, prev)
	s.Metrics.ObserveEvent(evt, time.Since(start))

	switch evt.Kind {
	case model.EventCached:
		return
	case model.EventFetched:
		s.recordFetch(evt.Data)
		if evt.Data.Fallback {
			log.WithField("donations", evt.Data.CurrentDonations).Warn("[CRON] hour figures are estimates past the lookup table")
		}
		if prev != nil && evt.Data.TotalHours > prev.TotalHours {
			s.trySend(notifier.FormatHourUnlocked(prev.TotalHours, evt.Data))
		}
	default:
		if err := s.Recorder.RecordError(&recorder.ErrorEvent{
			Timestamp: s.Now(),
			Kind:      string(evt.Kind),
			Message:   errString(evt.Err),
		}); err != nil {
			log.WithError(err).Error("[CRON] record fetch error")
		}
	}

	s.State.Update(evt)
}

func (s *Scheduler) bannerTask() {
	log.Info("[CRON] shift change, pushing banner")
	s.trySend(s.bannerMessage())
}

func (s *Scheduler) bannerMessage() string {
	return notifier.FormatBanner(widget.Render(s.State.Last(), s.Now(), s.Location))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}

	switch fields[0] {
	case "/status", "/start":
		return s.bannerMessage()
	case "/refresh":
		s.refreshTask()
		return s.bannerMessage()
	case "/next":
		data := s.State.LastData()
		if data == nil {
			return "No data yet."
		}
		return fmt.Sprintf("⏭ %s more for hour %d", widget.FormatDollars(data.CostToNextHour), data.TotalHours+1)
	case "/convert":
		if len(fields) < 2 {
			return "Usage: /convert <amount>"
		}
		amount, err := calculator.ParseAmount(fields[1])
		if err != nil {
			return "Amount must be a non-negative number."
		}
		c := calculator.Convert(amount)
		if c.Fallback {
			s.Metrics.ObserveFallback()
		}
		return notifier.FormatConversion(amount, c)
	default:
		return helpText
	}
}

const helpText = "Commands:\n• /status current banner\n• /refresh fetch now\n• /next cost of the next hour\n• /convert <amount> hours for a total"

func (s *Scheduler) recordFetch(data *model.ResultData) {
	if err := s.Recorder.RecordFetch(&recorder.FetchSnapshot{
		Timestamp:        data.FetchedAt,
		CurrentDonations: data.CurrentDonations,
		RunStart:         data.RunStart,
		TotalHours:       data.TotalHours,
		CostToNextHour:   data.CostToNextHour,
		Fallback:         data.Fallback,
		Source:           s.Collector.Fetcher.Name(),
	}); err != nil {
		log.WithError(err).Error("[CRON] record fetch")
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		log.WithError(err).Error("send notification")
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
