package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/evilwords/go-server/internal/hangman"
	"github.com/evilwords/go-server/internal/httpserver"
	"github.com/evilwords/go-server/internal/store"
	"github.com/evilwords/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	dict, err := hangman.NewDictionary(words.All())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build dictionary")
	}

	db, err := openDB(getEnv("DB_PATH", "./data/hangman.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db, dict)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Int("words", dict.Size()).Msg("starting hangman-go server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
