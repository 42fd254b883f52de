package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/JWT-WWIT/modern-web-app/internal/clients/redis"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/logger"
)

type Clients struct {
	NoteCache redis.NoteCache
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	var cache redis.NoteCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		c, err := redis.NewNoteCache(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init note cache: %w", err)
		}
		cache = c
	}

	return Clients{NoteCache: cache}, nil
}
