package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avinoddev/chatbot-memory/internal/config"
	"github.com/avinoddev/chatbot-memory/internal/database"
	"github.com/avinoddev/chatbot-memory/internal/handlers"
	"github.com/avinoddev/chatbot-memory/internal/middleware"
	"github.com/avinoddev/chatbot-memory/internal/repository"
	"github.com/avinoddev/chatbot-memory/internal/router"
	"github.com/avinoddev/chatbot-memory/internal/services"
)

func main() {
	log.Println("Starting chatbot memory service...")

	cfg := config.Load()

	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("PostgreSQL connected")

	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	log.Println("Database migrations applied")

	// Repositories
	userRepo := repository.NewUserRepo(pool)
	threadRepo := repository.NewThreadRepo(pool)
	messageRepo := repository.NewMessageRepo(pool)

	// Completion gateway: the client is built once here and injected; a
	// missing API key only surfaces when a completion is attempted.
	completion := services.NewCompletionService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	chatService := services.NewChatService(userRepo, threadRepo, messageRepo, completion)

	// Handlers
	userHandler := handlers.NewUserHandler(chatService)
	threadHandler := handlers.NewThreadHandler(chatService)
	messageHandler := handlers.NewMessageHandler(chatService)

	signupLimiter := middleware.NewRateLimiter(cfg.SignupRateLimit, time.Minute)

	r := router.New(userHandler, threadHandler, messageHandler, signupLimiter, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("Chatbot memory service ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
