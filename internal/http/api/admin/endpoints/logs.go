package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NovaMidia-Tec/painel/internal/db"
	"github.com/NovaMidia-Tec/painel/internal/http/api"
	"github.com/NovaMidia-Tec/painel/internal/http/api/admin/packets"
	"github.com/NovaMidia-Tec/painel/internal/model"
)

type LogController struct {
	store db.Store
}

// LogsModule mounts the audit log listing, visible to admin and operador.
func LogsModule(store db.Store) api.Module {
	ctl := &LogController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/logs", ctl.listLogs)
	})
}

// GET /api/admin/logs
func (l *LogController) listLogs(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireRole(user, model.RoleAdmin, model.RoleOperador); apiErr != nil {
		return nil, apiErr
	}

	all, err := l.store.ListLogs()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list logs"}
	}

	out := make([]packets.LogResponse, 0, len(all))
	for _, x := range all {
		out = append(out, packets.LogResponse{
			ID:        x.ID,
			UserID:    x.UserID,
			DeviceID:  x.DeviceID,
			Action:    x.Action,
			Details:   x.Details,
			CreatedAt: x.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
