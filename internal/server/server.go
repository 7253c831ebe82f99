package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskhub/db"
	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/handler"
	"taskhub/internal/middleware"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := runMigrations(gormDB); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Println("✅ Schema up to date")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	orgRepo := repository.NewOrganizationRepository(gormDB)
	teamRepo := repository.NewTeamRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)

	// Expired session rows are audit-only; sweep them at boot.
	if n, err := sessionRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("⚠️  Failed to sweep expired sessions: %v", err)
	} else if n > 0 {
		log.Printf("🧹 Removed %d expired session records", n)
	}

	issuer := auth.NewIssuer(userRepo, sessionRepo, cfg.JWTSecret)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userRepo, orgRepo, issuer, cfg)
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret)
	teamHandler := handler.NewTeamHandler(teamRepo, cfg.JWTSecret)
	taskHandler := handler.NewTaskHandler(taskRepo, userRepo, teamRepo, cfg.JWTSecret)

	// Every route passes the gate; it redirects unauthenticated page
	// navigation to /login and lets public paths through. Handlers
	// still re-derive the session themselves.
	r.Use(middleware.RequestGate(cfg.JWTSecret))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/session", authHandler.Session)

		api.GET("/tasks", taskHandler.List)
		api.POST("/tasks", taskHandler.Create)
		api.GET("/tasks/:id", taskHandler.GetByID)
		api.PATCH("/tasks/:id", taskHandler.Update)
		api.DELETE("/tasks/:id", taskHandler.Delete)

		api.GET("/users", userHandler.List)
		api.POST("/users", userHandler.Create)
		api.GET("/users/:id", userHandler.GetByID)
		api.PATCH("/users/:id", userHandler.Update)

		api.GET("/teams", teamHandler.List)
		api.POST("/teams", teamHandler.Create)
	}

	return &Server{
		Engine: r,
		DB:     gormDB,
		Config: cfg,
	}, nil
}

// runMigrations applies the embedded SQL migrations to the connected
// database.
func runMigrations(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	src, err := iofs.New(db.Migrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
