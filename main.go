package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"relaychat/data/database/mgo/mongoutil"
	"relaychat/global/config"
	"relaychat/logger"
	mid "relaychat/middleware"
	"relaychat/module/user"
	"relaychat/service/chat"
	"relaychat/service/chat/handlers"
	"relaychat/service/storage"
	"relaychat/service/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	config.ConfigIds(cfg)

	// 1) Storage
	ctx := context.Background()
	mongoCli, err := mongoutil.NewMongoDB(ctx, &mongoutil.Config{
		Uri:         cfg.MongoURI,
		Database:    cfg.MongoDatabase,
		MaxPoolSize: cfg.MongoPoolSize,
		MaxRetry:    cfg.MongoMaxRetry,
	})
	if err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}
	st := store.NewMongoStore(mongoCli)

	// 2) Presence mirror (optional)
	var presence *storage.Presence
	if cfg.RedisAddr != "" {
		presence, err = storage.NewPresence(storage.PresenceConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			NodeID:   cfg.NodeID,
			TTL:      cfg.PresenceTTL,
		})
		if err != nil {
			log.Fatalf("redis connect failed: %v", err)
		}
	}

	// 3) Gateway core
	g := chat.NewServer(chat.ServerConf{
		NodeID:        cfg.NodeID,
		SendQueueSize: cfg.SendQueueSize,
	}, st, presence)
	handlers.RegisterAll(g)

	// 4) HTTP + WebSocket
	r := gin.New()
	r.Use(gin.Recovery(), mid.CORS())

	r.GET("/ws", g.HandleWS)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "chat relay is running")
	})
	user.NewHandler(st).MountRoutes(r)

	logger.Infof("[HTTP] listening on %s node=%s", cfg.HTTPAddr, cfg.NodeID)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
