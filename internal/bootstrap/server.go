package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/travelpro/api"
	"github.com/Domenick1991/travelpro/config"
	"github.com/Domenick1991/travelpro/internal/report"
	"github.com/Domenick1991/travelpro/internal/service/booking"
	"github.com/Domenick1991/travelpro/internal/service/contacts"
	"github.com/Domenick1991/travelpro/internal/service/drafts"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Services is everything the HTTP API serves.
type Services struct {
	Bookings booking.BookingUseCase
	Contacts contacts.ContactsUseCase
	Backup   api.Backup
	Drafts   *drafts.Session
	Now      func() time.Time
}

type Servers struct {
	grpcServer *grpc.Server
	health     *health.Server
	httpServer *http.Server
}

// Run starts the gRPC health server and the HTTP API and blocks until context is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	s := newServers(cfg, svc)

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, svc Services) *Servers {
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	reflection.Register(grpcSrv)

	return &Servers{
		grpcServer: grpcSrv,
		health:     healthSrv,
		httpServer: &http.Server{
			Addr:    cfg.HTTP.Address,
			Handler: NewRouter(cfg, svc),
		},
	}
}

// NewRouter wires every API handler under /api.
func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg.HTTP.CORSOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	reportOpts := report.Options{
		Location:       cfg.Report.Location(),
		DateLayout:     cfg.Report.DateLayout,
		DateTimeLayout: cfg.Report.DateTimeLayout,
	}

	group := r.Group("/api")
	api.NewBookingHandler(svc.Bookings, svc.Now).Register(group.Group("/bookings"))
	api.NewDashboardHandler(svc.Bookings, cfg.Booking.UrgentWindow(), svc.Now).Register(group)
	api.NewReportHandler(svc.Bookings, svc.Backup, reportOpts, svc.Now).Register(group)
	api.NewContactsHandler(svc.Contacts).Register(group)
	if svc.Drafts != nil {
		api.NewDraftHandler(svc.Bookings, svc.Drafts).Register(group)
	}
	return r
}

// corsConfig allows any origin unless a list is configured; credentials are
// only allowed for explicit origins.
func corsConfig(origins []string) cors.Config {
	conf := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		conf.AllowAllOrigins = true
		return conf
	}
	conf.AllowOrigins = origins
	conf.AllowCredentials = true
	return conf
}
