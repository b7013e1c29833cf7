package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/storechat/backend/config"
	httpDelivery "github.com/storechat/backend/internal/delivery/http"
	"github.com/storechat/backend/internal/infrastructure/dialogflow"
	"github.com/storechat/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting StoreChat Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Agent: projects/%s/locations/%s/agents/%s",
		cfg.Dialogflow.ProjectID, cfg.Dialogflow.Location, cfg.Dialogflow.AgentID)

	// Initialize infrastructure dependencies
	dialogflowClient, err := dialogflow.NewClient(context.Background(), cfg.Dialogflow)
	if err != nil {
		log.Fatalf("Failed to initialize Dialogflow client: %v", err)
	}

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		dialogflowClient.SetDebug(true)
		log.Printf("Dialogflow client debug mode enabled")
	}

	// Initialize usecase layer
	chatService := usecase.NewChatService(dialogflowClient)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(chatService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
