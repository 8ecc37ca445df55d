package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NovaMidia-Tec/painel/internal/db"
	"github.com/NovaMidia-Tec/painel/internal/mqttbus"
	"github.com/NovaMidia-Tec/painel/internal/redis"
)

func main() {
	env := LoadEnvironment()

	if env.Environment != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	if err := mqttbus.Init(env.MQTTBrokerURL, "painel-server"); err != nil {
		log.Fatal().Err(err).Msg("mqtt init failed")
	}
	defer mqttbus.Cleanup()

	store := db.NewStore(db.DB)
	storageSystem := InitStorage(env)

	r := gin.New()
	r.Use(gin.Recovery())

	RegisterRoutes(r, env, store, storageSystem)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
