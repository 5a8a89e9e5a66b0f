package main

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/quantumstack/site/internal/clients/backend"
	"github.com/quantumstack/site/internal/config"
	"github.com/quantumstack/site/internal/content"
	"github.com/quantumstack/site/internal/entities"
	"github.com/quantumstack/site/internal/logger"
	"github.com/quantumstack/site/internal/metrics"
	"github.com/quantumstack/site/internal/notify"
	"github.com/quantumstack/site/internal/repositories"
	"github.com/quantumstack/site/internal/services"
	"github.com/quantumstack/site/internal/web"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "site",
	Short:         "Quantum Stack corporate website",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the website",
	RunE:  runServe,
}

var pingCmd = &cobra.Command{
	Use:   "ping-backend",
	Short: "Check that the backend API answers its health endpoint",
	RunE:  runPing,
}

var applicationsCmd = &cobra.Command{
	Use:   "applications <job-id>",
	Short: "List job applications stored in the local inbox, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplications,
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.Get(), nil
}

func newBackendClient(cfg config.BackendConfig) *backend.Client {
	client := backend.NewClient(cfg.URL, cfg.Timeout)
	client.SetRateLimit(cfg.MaxRequestsPerSecond)
	return client
}

func runServe(cmd *cobra.Command, _ []string) error {

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		return fmt.Errorf("can't create db context: %w", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		return fmt.Errorf("can't migrate db context: %w", err)
	}

	bus := EventBus.New()
	client := newBackendClient(cfg.Backend)
	applications := repositories.NewApplicationsRepository(dbContext.DB)

	catalog := repositories.NewCatalog(client, repositories.Revalidation{
		Jobs:      cfg.Backend.JobsTTL,
		Staff:     cfg.Backend.StaffTTL,
		Portfolio: cfg.Backend.PortfolioTTL,
	})

	siteContent, err := content.Default()
	if err != nil {
		return err
	}

	if cfg.Telegram.Enabled() {
		telegram, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, bus)
		if err != nil {
			return fmt.Errorf("can't create telegram notifier: %w", err)
		}
		defer telegram.Stop()
	}

	cleaner, err := services.NewApplicationsCleaner(applications, cfg.DB.Retention(), cfg.DB.Schedule())
	if err != nil {
		return fmt.Errorf("can't create applications cleaner: %w", err)
	}
	defer cleaner.Stop()

	warmer, err := services.NewBackendWarmer(client, cfg.Backend.WarmSchedule, cfg.Backend.Timeout)
	if err != nil {
		return fmt.Errorf("can't create backend warmer: %w", err)
	}
	defer warmer.Stop()

	server, err := web.NewServer(cfg.Server, web.Dependencies{
		Listings:     services.NewListings(catalog),
		Contact:      services.NewContactService(client, bus, cfg.Server.ContactRatePerMinute),
		Applications: services.NewApplicationService(applications, bus),
		Content:      siteContent,
	})
	if err != nil {
		return fmt.Errorf("can't create web server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run()
	}()

	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer signal.Stop(hangup)
	go func() {
		for range hangup {
			catalog.Invalidate()
			log.Info("SIGHUP received, backend responses will be refetched")
		}
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
		if err != nil {
			return err
		}
	}

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("web server shutdown: %v", err)
	}
	log.Info("Services stopped.")
	return nil
}

func runPing(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Backend.Timeout)
	defer cancel()

	start := time.Now()
	if err = newBackendClient(cfg.Backend).Health(ctx); err != nil {
		return fmt.Errorf("backend at %s is unhealthy: %w", cfg.Backend.URL, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "backend at %s is healthy (%v)\n", cfg.Backend.URL, time.Since(start).Round(time.Millisecond))
	return nil
}

func runApplications(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		return fmt.Errorf("can't create db context: %w", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		return fmt.Errorf("can't migrate db context: %w", err)
	}

	stored, err := repositories.NewApplicationsRepository(dbContext.DB).GetByJob(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("can't read applications for %s: %w", args[0], err)
	}
	writeApplications(cmd.OutOrStdout(), args[0], stored, time.Now())
	return nil
}

func writeApplications(w io.Writer, jobID string, applications []entities.JobApplication, now time.Time) {
	if len(applications) == 0 {
		fmt.Fprintf(w, "no applications for %s\n", jobID)
		return
	}
	for _, a := range applications {
		fmt.Fprintf(w, "%s\t%s <%s>\t%s\n", a.ID, a.FullName, a.Email, humanize.RelTime(a.CreatedAt, now, "ago", "from now"))
	}
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ./configs/config.yaml or CONFIG_PATH)")
	rootCmd.AddCommand(serveCmd, pingCmd, applicationsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
