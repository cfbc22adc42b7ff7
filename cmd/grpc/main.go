package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	pb "github.com/fekuna/omnipos-backoffice-service/api/backoffice/v1"
	"github.com/fekuna/omnipos-backoffice-service/config"
	"github.com/fekuna/omnipos-backoffice-service/migrations"
	"github.com/fekuna/omnipos-backoffice-service/pkg/broker"
	"github.com/fekuna/omnipos-backoffice-service/pkg/cache"
	"github.com/fekuna/omnipos-backoffice-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-backoffice-service/pkg/i18n"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/fekuna/omnipos-backoffice-service/pkg/middleware"
	"github.com/fekuna/omnipos-backoffice-service/pkg/search"

	catH "github.com/fekuna/omnipos-backoffice-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-backoffice-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/category/usecase"

	invH "github.com/fekuna/omnipos-backoffice-service/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/omnipos-backoffice-service/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/omnipos-backoffice-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/inventory/usecase"

	prepH "github.com/fekuna/omnipos-backoffice-service/internal/preparation/handler"
	prepStorePkg "github.com/fekuna/omnipos-backoffice-service/internal/preparation/store"
	prepUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/preparation/usecase"

	prodH "github.com/fekuna/omnipos-backoffice-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-backoffice-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/product/usecase"

	"github.com/fekuna/omnipos-backoffice-service/internal/sale/feed"
	saleH "github.com/fekuna/omnipos-backoffice-service/internal/sale/handler"
	saleListenerPkg "github.com/fekuna/omnipos-backoffice-service/internal/sale/listener"
	saleRepoPkg "github.com/fekuna/omnipos-backoffice-service/internal/sale/repository"
	saleUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/sale/usecase"

	simH "github.com/fekuna/omnipos-backoffice-service/internal/simulation/handler"
	simUCPkg "github.com/fekuna/omnipos-backoffice-service/internal/simulation/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	i18n.Init()
	if path := os.Getenv("I18N_EXTRA_LOCALE"); path != "" {
		if err := i18n.Load(path); err != nil {
			appLogger.Warn("Failed to load extra locale", zap.String("path", path), zap.Error(err))
		}
	}

	// 3. Connect to Database
	pgConfig := &postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	}
	db, err := postgres.NewPostgres(pgConfig)
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if cfg.Server.AutoMigrate {
		if err := postgres.Migrate(migrations.FS, ".", pgConfig.URL()); err != nil {
			appLogger.Fatal("Could not apply migrations", zap.Error(err))
		}
		appLogger.Info("Database schema is up to date")
	}

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	saleRepo := saleRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 6. Initialize Kafka
	producer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.SalesTopic,
	})
	defer producer.Close()

	pendingConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.SalesTopic,
		GroupID: cfg.Kafka.PendingOrdersGroup,
	})
	defer pendingConsumer.Close()

	inventoryConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.SalesTopic,
		GroupID: cfg.Kafka.InventoryGroup,
	})
	defer inventoryConsumer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.SalesTopic))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 7. Initialize Elasticsearch. Search is optional; the catalog falls
	// back to SQL when it is down.
	var searcher prodUCPkg.Searcher
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, product search uses SQL", zap.Error(err))
	} else if err := prodUCPkg.EnsureSearchIndex(ctx, esClient); err != nil {
		appLogger.Warn("Could not create product search index", zap.Error(err))
	} else {
		searcher = esClient
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 8. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, searcher, appLogger)
	saleUC := saleUCPkg.NewSaleUseCase(saleRepo, prodUC, producer, cfg.Locale.PhoneRegion, appLogger)
	pendingFeed := feed.NewFeed(saleUC, redisClient, feed.NewHub(), appLogger)
	prepUC := prepUCPkg.NewPreparationUseCase(
		saleUC,
		prepStorePkg.NewRedisPickStore(redisClient.Client, cfg.Preparation.SessionTTL),
		redisClient,
		cfg.Preparation.LockTTL,
		appLogger,
	)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, appLogger)
	simUC := simUCPkg.NewSimulationUseCase(prodUC, appLogger)

	// 9. Start Listeners
	go saleListenerPkg.NewPendingOrdersListener(pendingConsumer, pendingFeed, appLogger).Start(ctx)
	go invListenerPkg.NewInventoryListener(inventoryConsumer, invUC, appLogger).Start(ctx)

	// 10. Initialize Handlers
	catHandler := catH.NewCategoryHandler(catUC, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	saleHandler := saleH.NewSaleHandler(saleUC, pendingFeed, cfg.Receipt.Title, appLogger)
	prepHandler := prepH.NewPreparationHandler(prepUC, appLogger)
	invHandler := invH.NewInventoryHandler(invUC, appLogger)
	simHandler := simH.NewSimulationHandler(simUC, cfg.Receipt.Title, appLogger)

	// 11. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", port), zap.Error(err))
	}

	secret := []byte(cfg.JWT.SecretKey)
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.ContextInterceptor(secret)),
		grpc.StreamInterceptor(middleware.StreamContextInterceptor(secret)),
	)

	pb.RegisterCategoryServiceServer(grpcServer, catHandler)
	pb.RegisterProductServiceServer(grpcServer, prodHandler)
	pb.RegisterSaleServiceServer(grpcServer, saleHandler)
	pb.RegisterPreparationServiceServer(grpcServer, prepHandler)
	pb.RegisterInventoryServiceServer(grpcServer, invHandler)
	pb.RegisterSimulationServiceServer(grpcServer, simHandler)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}
