package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/NovaMidia-Tec/painel/internal/audit"
	"github.com/NovaMidia-Tec/painel/internal/db"
	"github.com/NovaMidia-Tec/painel/internal/http/api"
	adminapi "github.com/NovaMidia-Tec/painel/internal/http/api/admin/endpoints"
	playerapi "github.com/NovaMidia-Tec/painel/internal/http/api/player/endpoints"
	"github.com/NovaMidia-Tec/painel/internal/http/middleware"
	"github.com/NovaMidia-Tec/painel/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, storageSystem storage.Storage) {
	rec := audit.NewRecorder(store)

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			"If-None-Match",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"ETag",
		},
		AllowCredentials: false,
	}))

	r.Use(middleware.InjectStore(store))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		adminapi.AuthPublicModule(env.SecretKey, store, rec),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		adminapi.AuthSessionModule(env.SecretKey, store, rec),
		adminapi.UsersModule(store, rec),
		adminapi.BannerModule(store, storageSystem, rec),
		adminapi.DeviceModule(store, rec),
		adminapi.DashboardModule(store),
		adminapi.LogsModule(store),
	)

	// public playback surface
	player := r.Group("/api/player")
	playerapi.RegisterPlayerRoutes(player, store, rec)

	// uploaded media
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
