package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/DWRSH/point-of-sale/internal/application/service"
	"github.com/DWRSH/point-of-sale/internal/config"
	"github.com/DWRSH/point-of-sale/internal/infrastructure/database"
	infraRepo "github.com/DWRSH/point-of-sale/internal/infrastructure/repository"
	"github.com/DWRSH/point-of-sale/internal/presentation/http/handler"
	"github.com/DWRSH/point-of-sale/internal/presentation/http/routes"
	"github.com/DWRSH/point-of-sale/pkg/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pos-api",
		Short: "Point of sale backend API",
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			setupLogging(cfg)

			db, err := database.NewPostgresDB(&cfg.Database)
			if err != nil {
				return err
			}

			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			if err := database.SeedDefaultData(db); err != nil {
				return err
			}

			if cfg.App.Env == "production" {
				gin.SetMode(gin.ReleaseMode)
			}

			// Repositories
			txManager := infraRepo.NewTxManager(db)
			productRepo := infraRepo.NewProductRepository(db)
			categoryRepo := infraRepo.NewCategoryRepository(db)
			customerRepo := infraRepo.NewCustomerRepository(db)
			saleRepo := infraRepo.NewSaleRepository(db)
			paymentRepo := infraRepo.NewPaymentRepository(db)
			returnRepo := infraRepo.NewReturnRepository(db)
			userRepo := infraRepo.NewUserRepository(db)
			idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

			// Services
			jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)
			authService := service.NewAuthService(userRepo, jwtManager)
			productService := service.NewProductService(productRepo, categoryRepo)
			categoryService := service.NewCategoryService(categoryRepo)
			customerService := service.NewCustomerService(txManager, customerRepo, paymentRepo)
			saleService := service.NewSaleService(txManager, saleRepo, paymentRepo, productRepo, customerRepo)
			returnService := service.NewReturnService(txManager, returnRepo, saleRepo, productRepo, customerRepo)
			dashboardService := service.NewDashboardService(saleRepo, customerRepo, productRepo, cfg.Dashboard.LowStockLimit)

			// HTTP layer
			router := routes.Setup(&routes.Handlers{
				Auth:      handler.NewAuthHandler(authService),
				Product:   handler.NewProductHandler(productService),
				Category:  handler.NewCategoryHandler(categoryService),
				Customer:  handler.NewCustomerHandler(customerService),
				Sale:      handler.NewSaleHandler(saleService),
				Return:    handler.NewReturnHandler(returnService),
				Dashboard: handler.NewDashboardHandler(dashboardService),
			}, &routes.Deps{
				JWTManager:      jwtManager,
				Cfg:             cfg,
				IdempotencyRepo: idempotencyRepo,
			})

			srv := &http.Server{
				Addr:    ":" + cfg.App.Port,
				Handler: router,
			}

			go func() {
				log.Info().Str("port", cfg.App.Port).Msg("starting HTTP server")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("server failed")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info().Msg("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and seed default data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			setupLogging(cfg)

			db, err := database.NewPostgresDB(&cfg.Database)
			if err != nil {
				return err
			}

			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			return database.SeedDefaultData(db)
		},
	}
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.App.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if cfg.App.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
