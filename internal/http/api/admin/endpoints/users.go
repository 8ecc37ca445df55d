package endpoints

import (
	"net/http"
	"strconv"
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

type UserController struct {
	store db.Store
	audit *audit.Recorder
}

func newUserController(store db.Store, rec *audit.Recorder) *UserController {
	return &UserController{store: store, audit: rec}
}

// UsersModule mounts all /users endpoints. Every operation here is
// admin-only.
func UsersModule(store db.Store, rec *audit.Recorder) api.Module {
	ctl := newUserController(store, rec)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/users", ctl.listUsers)
		c.POST("/users", ctl.createUser)
		c.PUT("/users/:id/role", ctl.changeRole)
		c.DELETE("/users/:id", ctl.deleteUser)
	})
}

// GET /api/admin/users
func (u *UserController) listUsers(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireRole(user, model.RoleAdmin); apiErr != nil {
		return nil, apiErr
	}

	all, err := u.store.ListUsers()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list users"}
	}

	out := make([]packets.UserResponse, 0, len(all))
	for _, x := range all {
		out = append(out, packets.UserResponse{
			ID:        x.ID,
			Email:     x.Email,
			Role:      x.Role,
			CreatedAt: x.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// POST /api/admin/users
func (u *UserController) createUser(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireRole(user, model.RoleAdmin); apiErr != nil {
		log.Warn().Int("user_id", user.ID).Str("role", user.Role).
			Msg("non-admin attempted to create a user")
		return nil, apiErr
	}

	var request packets.CreateUserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if !model.ValidRole(request.Role) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid role"}
	}

	if existing, _ := u.store.GetUserByEmail(request.Email); existing != nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "email already registered"}
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not hash password"}
	}

	newID, err := u.store.CreateUser(request.Email, hashed, request.Role)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create user"}
	}

	u.audit.Record(&user.ID, nil, "create_user", gin.H{
		"created_user_id": newID,
		"email":           request.Email,
		"role":            request.Role,
	})

	return gin.H{"id": newID}, nil
}

// PUT /api/admin/users/:id/role
func (u *UserController) changeRole(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireRole(user, model.RoleAdmin); apiErr != nil {
		return nil, apiErr
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if !model.ValidRole(request.Role) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid role"}
	}

	target, err := u.store.GetUserByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "user not found"}
	}

	if err := u.store.UpdateUserRole(id, request.Role); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update role"}
	}

	u.audit.Record(&user.ID, nil, "change_role", gin.H{
		"target_user_id": id,
		"old_role":       target.Role,
		"new_role":       request.Role,
	})

	return gin.H{"success": "role updated"}, nil
}

// DELETE /api/admin/users/:id
func (u *UserController) deleteUser(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireRole(user, model.RoleAdmin); apiErr != nil {
		return nil, apiErr
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if id == user.ID {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "cannot delete the current user"}
	}

	if _, err := u.store.GetUserByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "user not found"}
	}

	if err := u.store.DeleteUser(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete user"}
	}

	u.audit.Record(&user.ID, nil, "delete_user", gin.H{"target_user_id": id})

	return gin.H{"success": "user deleted"}, nil
}
