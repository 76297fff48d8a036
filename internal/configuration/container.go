package configuration

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"chatline/internal/db"
	"chatline/internal/handler"
	"chatline/internal/hub"
	"chatline/internal/model"
	"chatline/internal/repo"
	"chatline/internal/service"
)

type Container struct {
	AuthHandler         handler.AuthHandler
	UserHandler         handler.UserHandler
	ConversationHandler handler.ConversationHandler
	MessageHandler      handler.MessageHandler
	MonitorHandler      handler.MonitorHandler
	Hub                 *hub.Hub
	Config              Config
	Logger              *zap.Logger

	// private - for cleanup
	mongoClient *mongo.Database
}

func BuildContainer() (*Container, error) {
	config, err := LoadConfig(ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	con, err := db.OpenConnection(config.Mongo.Uri, config.Mongo.Database)
	if err != nil {
		return nil, err
	}

	userStore := db.NewRepository[model.User](con, config.Mongo.UsersCollection)
	conversationStore := db.NewRepository[model.Conversation](con, config.Mongo.ConversationsCollection)
	messageStore := db.NewRepository[model.Message](con, config.Mongo.MessagesCollection)

	userRepo := repo.NewUserRepository(userStore, logger)
	conversationRepo := repo.NewConversationRepository(conversationStore, logger)
	messageRepo := repo.NewMessageRepository(messageStore, logger)

	authService := service.NewAuthService(userRepo, config.Auth.JwtSecret,
		time.Duration(config.Auth.TokenTTLSeconds)*time.Second, logger)
	userService := service.NewUserService(userRepo, logger)
	conversationService := service.NewConversationService(conversationRepo, userRepo, logger)
	messageService := service.NewMessageService(messageRepo, conversationRepo, userRepo, logger)

	chatHub := hub.NewHub(config.Server.AllowedOrigins, logger)
	monitorService := hub.NewMonitorService(chatHub)

	return &Container{
		AuthHandler:         handler.NewAuthHandler(authService),
		UserHandler:         handler.NewUserHandler(userService),
		ConversationHandler: handler.NewConversationHandler(conversationService),
		MessageHandler:      handler.NewMessageHandler(messageService),
		MonitorHandler:      handler.NewMonitorHandler(monitorService),
		Hub:                 chatHub,
		Config:              *config,
		Logger:              logger,
		mongoClient:         con,
	}, nil
}

// Close gracefully shuts down all connections.
func (c *Container) Close() error {
	// Stop the hub first (closes all WebSocket connections)
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	// Close MongoDB connection pool
	if c.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.mongoClient.Client().Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to close MongoDB connection: %w", err)
		}
	}

	return nil
}
