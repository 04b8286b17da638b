package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ImBidou/chkobba-multiplayer/api"
	"github.com/ImBidou/chkobba-multiplayer/config"
	"github.com/ImBidou/chkobba-multiplayer/game"
	"github.com/ImBidou/chkobba-multiplayer/loghandler"
	"github.com/ImBidou/chkobba-multiplayer/rooms"
	"github.com/ImBidou/chkobba-multiplayer/storage"
	"github.com/ImBidou/chkobba-multiplayer/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found; using environment variables.")
	}

	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stdout, slog.LevelInfo)))

	cfg := config.Load()
	ctx := context.Background()

	if cfg.AuthBaseURL == "" {
		slog.Info("auth disabled; players get anonymous ids", "tag", "main")
	} else {
		slog.Info("auth configured", "tag", "main", "baseURL", cfg.AuthBaseURL)
	}

	// Room store: Redis when configured, in-memory otherwise.
	var store rooms.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		store = rooms.NewRedisStore(rdb)
		slog.Info("using Redis room store", "tag", "main", "addr", cfg.RedisAddr)
	} else {
		store = rooms.NewMemoryStore()
		slog.Info("using in-memory room store", "tag", "main")
	}

	// Match history persistence is optional.
	historyStore, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Postgres connection failed: %v", err)
	}
	defer historyStore.Close()

	svc := rooms.NewService(store, cfg.DefaultTargetScore, cfg.MaxNameLength)
	svc.OnMatchEnd = func(room *rooms.Room, s *game.Session, reason string) {
		playerIDs := make([]string, len(room.Seats))
		playerNames := make([]string, len(room.Seats))
		for i, seat := range room.Seats {
			playerIDs[i] = seat.PlayerID
			playerNames[i] = seat.Name
		}
		winner := ""
		var best int
		for key, score := range s.MatchScores {
			if score > best {
				best, winner = score, key
			} else if score == best {
				winner = ""
			}
		}
		if err := historyStore.InsertMatchResult(ctx, s.ID, room.ID, string(s.Mode), s.TargetScore,
			playerIDs, playerNames, s.MatchScores, winner, reason); err != nil {
			slog.Error("persisting match result", "tag", "main", "session", s.ID, "err", err)
		}
	}

	hub := ws.NewHub(cfg, svc)
	go hub.Run(ctx)

	apiHandler := api.NewHandler(cfg, historyStore)

	http.HandleFunc("/ws", hub.ServeWS)
	http.HandleFunc("/api/health", apiHandler.Health)
	http.HandleFunc("/api/history", apiHandler.History)

	addr := fmt.Sprintf(":%d", cfg.WSPort)
	slog.Info("chkobba server listening", "tag", "main", "addr", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}
