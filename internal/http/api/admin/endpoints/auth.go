package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/NovaMidia-Tec/painel/internal/audit"
	"github.com/NovaMidia-Tec/painel/internal/db"
	"github.com/NovaMidia-Tec/painel/internal/http/api"
	"github.com/NovaMidia-Tec/painel/internal/http/api/admin/packets"
	"github.com/NovaMidia-Tec/painel/internal/http/middleware"
	"github.com/NovaMidia-Tec/painel/internal/model"
)

// AuthPublicModule mounts the public login endpoint.
func AuthPublicModule(jwtSecret string, store db.Store, rec *audit.Recorder) api.Module {
	ctl := newAccountManager(jwtSecret, store, rec)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/login", ctl.userLogin)
	})
}

// AuthSessionModule mounts private session endpoints (JWT required).
func AuthSessionModule(jwtSecret string, store db.Store, rec *audit.Recorder) api.Module {
	ctl := newAccountManager(jwtSecret, store, rec)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/current_profile", ctl.getCurrentProfile)
		c.POST("/auth/logout", ctl.userLogout)
	})
}

type AccountManager struct {
	jwtSecret string
	store     db.Store
	audit     *audit.Recorder
}

func newAccountManager(secret string, store db.Store, rec *audit.Recorder) *AccountManager {
	return &AccountManager{jwtSecret: secret, store: store, audit: rec}
}

// POST /api/admin/auth/login
func (a *AccountManager) userLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	foundUser, err := a.store.GetUserByEmail(request.Email)
	if err != nil || foundUser == nil || !middleware.CheckPassword(foundUser.HashedPassword, request.Password) {
		log.Warn().Str("email", request.Email).Msg("rejected login attempt")
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	}

	token, err := middleware.GenerateJWT(foundUser.ID, a.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	a.audit.Record(&foundUser.ID, nil, "login", gin.H{"email": foundUser.Email})

	return gin.H{"token": token, "role": foundUser.Role}, nil
}

// POST /api/admin/auth/logout
func (a *AccountManager) userLogout(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	// token discard happens client-side; this records the action
	a.audit.Record(&user.ID, nil, "logout", nil)
	return gin.H{"success": "logged out"}, nil
}

// GET /api/admin/auth/current_profile
func (a *AccountManager) getCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return packets.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}
