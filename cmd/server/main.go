package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	httpadapter "reactivation/internal/adapters/http"
	"reactivation/internal/config"
	"reactivation/internal/domain"
	"reactivation/internal/logging"
	"reactivation/internal/services/campaign"
	"reactivation/internal/workers/followups"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "reactivation",
		Short:         "Gym member reactivation campaigns over WhatsApp",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "path to the YAML config file")

	approveCmd.Flags().String("batch", "", "batch id to approve (defaults to the latest)")
	approveCmd.Flags().Bool("yes", false, "dispatch without the confirmation prompt")
	root.AddCommand(serveCmd, runCmd, approveCmd, followupsCmd, migrateCmd, scoreCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger every command needs.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log.With(zap.String("env", cfg.Env)), nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the daily scheduler and the follow-up worker",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		a, err := newApp(ctx, cfg, log, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := &http.Server{
			Handler:           httpadapter.New(ctx, a.http).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		ln, err := net.Listen("tcp", cfg.ListenAddr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.ListenAddr, err)
		}
		if cfg.MaxConnections > 0 {
			ln = netutil.LimitListener(ln, cfg.MaxConnections)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.Info("listening", zap.String("addr", cfg.ListenAddr), zap.Int("max_connections", cfg.MaxConnections))
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
			defer done()
			return srv.Shutdown(shutdownCtx)
		})
		g.Go(func() error {
			return followups.Run(gctx, a.orch, a.clock, cfg.Campaign.FollowupPoll, log.Named("followups"))
		})

		a.scheduler.Start(gctx)
		err = g.Wait()
		a.scheduler.Stop()
		log.Info("shut down")
		return err
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Prepare today's batch now (and dispatch it when unattended)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		a, err := newApp(ctx, cfg, log, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.orch.RunDaily(ctx)
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve a pending batch and dispatch every item",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		var bar *progressbar.ProgressBar
		a, err := newApp(ctx, cfg, log, func(domain.SendResult) {
			if bar != nil {
				_ = bar.Add(1)
			}
		})
		if err != nil {
			return err
		}
		defer a.Close()

		batchID, _ := cmd.Flags().GetString("batch")
		var batch domain.Batch
		if batchID == "" {
			batch, err = a.orch.LatestBatch(ctx)
		} else {
			batch, err = a.orch.Batch(ctx, batchID)
		}
		if err != nil {
			return err
		}
		if batch.Status != domain.BatchPendingApproval {
			return fmt.Errorf("%w: %s is %s", domain.ErrBatchNotPending, batch.ID, batch.Status)
		}

		s := batch.Summary
		fmt.Printf("Batch %s (%s): %d leads, mean score %d, expected %d conversions / R$%d, ROI %d%%\n",
			batch.ID, s.Date, s.TotalLeads, s.MeanScore, s.ExpectedConversions, s.ExpectedRevenue, s.ROIPercent)
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Print("Dispatch now? [y/N] ")
			var answer string
			_, _ = fmt.Scanln(&answer)
			if answer != "y" && answer != "Y" {
				fmt.Println("aborted")
				return nil
			}
		}

		bar = progressbar.Default(int64(len(batch.Items)), "dispatching")
		res, err := a.orch.Approve(ctx, batch.ID, campaign.ApproveAll(batch))
		_ = bar.Finish()
		fmt.Printf("sent %d, failed %d of %d\n", res.Sent, res.Failed, res.Total)
		return err
	},
}

var followupsCmd = &cobra.Command{
	Use:   "followups",
	Short: "Fire every follow-up stage that is due now",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		a, err := newApp(ctx, cfg, log, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		fired := followups.RunOnce(ctx, a.orch, log.Named("followups"))
		fmt.Printf("%d follow-up messages attempted\n", fired)
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending store migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		store, err := openStore(cmd.Context(), cfg.Store)
		if err != nil {
			return err
		}
		log.Info("schema up to date", zap.String("driver", cfg.Store.Driver))
		return store.Close()
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score the current lapsed population without preparing a batch",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		a, err := newApp(ctx, cfg, log, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		summary, err := a.orch.ScorePopulation(ctx)
		if err != nil {
			return err
		}
		return printJSON(summary)
	},
}
