package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abtree/payment-backend/internal"
	"github.com/abtree/payment-backend/internal/payment"
	"github.com/abtree/payment-backend/internal/payment/mongodb"
	"github.com/abtree/payment-backend/internal/paymentgateway"
	"github.com/abtree/payment-backend/internal/transport/rest"
	"github.com/abtree/payment-backend/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle payment API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

// Dependencies is the explicit dependency object handed to the HTTP layer;
// there is no process-wide shared state.
type Dependencies struct {
	Config      *internal.Config
	MongoClient *mongo.Client
	Router      *chi.Mux
	Logger      *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting payment backend server",
		"address", addr,
		"environment", deps.Config.Server.Environment,
		"stripe_configured", deps.Config.Payment.StripeSecretKey != "",
		"mongodb_connected", deps.MongoClient != nil)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		// Close the store connection and exit. In-flight requests are not
		// drained.
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		if deps.MongoClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := deps.MongoClient.Disconnect(ctx); err != nil {
				deps.Logger.Error("mongodb disconnect error", "error", err)
			}
		}
		if err := server.Close(); err != nil {
			deps.Logger.Error("server close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Server.Environment)
	log := logger.L()

	// One blocking connection attempt before the listener opens. A failure
	// is logged but does not abort startup: the service then runs with
	// persistence disabled and the health endpoint reports the state.
	mongoClient, repository := connectRecordStore(config.Database, log)

	gateway := paymentgateway.NewClient(config.Payment.StripeSecretKey, log)
	service := payment.NewService(gateway, repository, config.Payment.RecipientCard, log)
	handler := payment.NewHandler(service, log)
	health := rest.NewHealthHandler(mongoClient != nil, config.Payment.StripeSecretKey != "")

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, handler, health, config.Server.Origins(), log)

	return &Dependencies{
		Config:      config,
		MongoClient: mongoClient,
		Router:      router,
		Logger:      log,
	}, nil
}

func connectRecordStore(cfg internal.DatabaseConfig, log *slog.Logger) (*mongo.Client, payment.Repository) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err == nil {
		err = client.Ping(ctx, nil)
	}
	if err != nil {
		log.Error("mongodb connection failed, payments will not be saved", "error", err)
		return nil, mongodb.NewDisconnectedRepository()
	}

	log.Info("connected to mongodb", "database", cfg.Name)
	return client, mongodb.NewPaymentRepository(client.Database(cfg.Name))
}
