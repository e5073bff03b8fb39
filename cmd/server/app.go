package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	httpadapter "reactivation/internal/adapters/http"
	"reactivation/internal/adapters/kafka"
	"reactivation/internal/adapters/mysql"
	pg "reactivation/internal/adapters/postgres"
	"reactivation/internal/adapters/sqlite"
	"reactivation/internal/adapters/waha"
	"reactivation/internal/config"
	"reactivation/internal/domain"
	"reactivation/internal/ports"
	"reactivation/internal/random"
	"reactivation/internal/services/campaign"
	"reactivation/internal/services/experiments"
	"reactivation/internal/services/ledger"
	"reactivation/internal/services/messages"
	"reactivation/internal/services/offers"
	"reactivation/internal/services/replies"
	"reactivation/internal/services/reports"
	"reactivation/internal/services/scoring"
	"reactivation/internal/services/selector"
)

// app holds the wired service graph shared by every command.
type app struct {
	cfg       config.Config
	log       *zap.Logger
	clock     clockwork.Clock
	store     ports.Store
	orch      *campaign.Orchestrator
	scheduler *campaign.Scheduler
	http      httpadapter.Deps
	closers   []func() error
}

// noPopulation stands in when no member database is configured.
type noPopulation struct{}

func (noPopulation) FetchInactive(context.Context) ([]domain.CustomerRecord, error) { return nil, nil }

func openStore(ctx context.Context, cfg config.StoreConfig) (ports.Store, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "sqlite":
		st, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// newApp wires adapters and services. onSend, when set, observes every
// send result.
func newApp(ctx context.Context, cfg config.Config, log *zap.Logger, onSend func(domain.SendResult)) (*app, error) {
	a := &app{cfg: cfg, log: log, clock: clockwork.NewRealClock()}
	ok := false
	defer func() {
		if !ok {
			_ = a.Close()
		}
	}()

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.store = store
	a.closers = append(a.closers, store.Close)
	log.Info("store ready", zap.String("driver", cfg.Store.Driver))

	var population ports.PopulationSource = noPopulation{}
	if cfg.Population.MySQLDSN != "" {
		src, err := mysql.Open(cfg.Population.MySQLDSN, cfg.Population.Table)
		if err != nil {
			return nil, fmt.Errorf("open population source: %w", err)
		}
		a.closers = append(a.closers, src.Close)
		population = src
	} else {
		log.Warn("no population database configured, daily runs will find nobody")
	}

	var sender ports.Sender
	switch cfg.Sender.Driver {
	case "waha":
		sender = waha.New(cfg.Sender.BaseURL, cfg.Sender.APIKey, cfg.Sender.Session, cfg.Sender.Timeout)
	default:
		log.Warn("dry-run sender, messages are only logged")
		sender = waha.NewLogSender(log.Named("sender"))
	}

	var events ports.EventPublisher = ports.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		pub := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, a.clock)
		a.closers = append(a.closers, pub.Close)
		events = pub
	}

	rng, err := random.FromConfig(cfg.Campaign.RandomSeed)
	if err != nil {
		return nil, fmt.Errorf("seed random source: %w", err)
	}

	cc := cfg.Campaign
	tracker := experiments.New(store, a.clock, rng, log.Named("experiments"))
	sel := selector.New(store, store, a.clock, selector.Policy{
		CooldownDays:    cc.CooldownDays,
		ScoreFloor:      cc.ScoreFloor,
		TightScoreFloor: cc.TightScoreFloor,
		MinBatch:        cc.MinBatch,
		MaxBatch:        cc.MaxBatch,
	}, log.Named("selector"))
	led := ledger.New(store, store, store, tracker, events, a.clock, log.Named("ledger"))
	rep := reports.New(population, store, store, store, store, store, a.clock)

	opts := campaign.Options{
		SendDelayMin:          cc.SendDelayMin,
		SendDelayMax:          cc.SendDelayMax,
		ReinforcementAfter:    cc.ReinforcementAfter,
		UrgencyAfter:          cc.UrgencyAfter,
		StageRetryDelay:       cc.StageRetryDelay,
		MaxStageAttempts:      cc.MaxStageAttempts,
		FollowupBatch:         cc.FollowupBatch,
		Unattended:            cc.Unattended,
		ExperimentID:          cc.ExperimentID,
		PerformanceWindowDays: cc.PerformanceWindowDays,
		PopulationRetries:     cfg.Population.Retries,
		PopulationRetryDelay:  cfg.Population.RetryDelay,
		OnSend:                onSend,
	}
	a.orch = campaign.New(campaign.Deps{
		Population:  population,
		Sender:      sender,
		Offers:      offers.New(),
		Messages:    messages.New(rng),
		Scorer:      scoring.New(a.clock),
		Selector:    sel,
		Experiments: tracker,
		Ledger:      led,
		Performance: rep,
		Batches:     store,
		Sequences:   store,
		Events:      events,
		Clock:       a.clock,
		Rand:        rng,
		Log:         log.Named("campaign"),
	}, opts)

	hour, minute, err := config.ParseTrigger(cc.DailyTrigger)
	if err != nil {
		return nil, err
	}
	a.scheduler = campaign.NewScheduler(a.orch, a.clock, hour, minute, cc.Location(), log.Named("scheduler"))

	a.http = httpadapter.Deps{
		Campaign:    a.orch,
		Scheduler:   a.scheduler,
		Replies:     replies.NewService(store, store, store, sel, a.orch, events, a.clock, log.Named("replies")),
		Blacklist:   sel,
		Ledger:      led,
		Experiments: tracker,
		Reports:     rep,
		Log:         log.Named("http"),
	}
	ok = true
	return a, nil
}

// Close releases adapters in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
