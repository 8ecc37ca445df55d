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
	"github.com/NovaMidia-Tec/painel/internal/model"
	"github.com/NovaMidia-Tec/painel/internal/mqttbus"
	"github.com/NovaMidia-Tec/painel/internal/presence"
	"github.com/NovaMidia-Tec/painel/internal/redis"
)

type DeviceController struct {
	store db.Store
	audit *audit.Recorder
}

func newDeviceController(store db.Store, rec *audit.Recorder) *DeviceController {
	return &DeviceController{store: store, audit: rec}
}

// DeviceModule mounts all authenticated /devices endpoints. Any role can
// view; mutations need admin or operador. There is deliberately no delete
// endpoint for devices.
func DeviceModule(store db.Store, rec *audit.Recorder) api.Module {
	ctl := newDeviceController(store, rec)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/devices", ctl.listDevices)
		c.POST("/devices", ctl.createDevice)
		c.POST("/devices/:id/activate", ctl.activateDevice)
		c.POST("/devices/:id/deactivate", ctl.deactivateDevice)
		c.GET("/devices/:id/banners", ctl.getAssignedBanners)
		c.PUT("/devices/:id/banners", ctl.assignBanners)
	})
}

func deviceResponse(d model.Device, now time.Time) packets.DeviceResponse {
	var lastSeen *string
	if d.LastSeen != nil {
		s := d.LastSeen.Format(time.RFC3339)
		lastSeen = &s
	}
	return packets.DeviceResponse{
		ID:        d.ID,
		Name:      d.Name,
		Status:    d.Status,
		LastSeen:  lastSeen,
		Online:    presence.IsOnline(d.LastSeen, now),
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}

// GET /api/admin/devices
func (t *DeviceController) listDevices(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := t.store.ListDevices()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list devices"}
	}

	now := time.Now()
	out := make([]packets.DeviceResponse, 0, len(all))
	for _, d := range all {
		out = append(out, deviceResponse(d, now))
	}
	return out, nil
}

// POST /api/admin/devices
func (t *DeviceController) createDevice(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireRole(user, model.RoleAdmin, model.RoleOperador); apiErr != nil {
		return nil, apiErr
	}

	var request packets.CreateDeviceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	status := request.Status
	if status == "" {
		status = model.DeviceStatusActive
	}
	if status != model.DeviceStatusActive && status != model.DeviceStatusInactive {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid status"}
	}

	if _, err := t.store.GetDeviceByName(request.Name); err == nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "device name already registered"}
	}

	device, err := t.store.CreateDevice(request.Name, status)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create device"}
	}

	t.audit.Record(&user.ID, &device.ID, "add_device", gin.H{
		"name":   request.Name,
		"status": status,
	})

	return deviceResponse(device, time.Now()), nil
}

// POST /api/admin/devices/:id/activate
func (t *DeviceController) activateDevice(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return t.setStatus(ctx, user, model.DeviceStatusActive, "activate_device")
}

// POST /api/admin/devices/:id/deactivate
func (t *DeviceController) deactivateDevice(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return t.setStatus(ctx, user, model.DeviceStatusInactive, "deactivate_device")
}

func (t *DeviceController) setStatus(ctx *gin.Context, user *model.User, status, action string) (any, *api.APIError) {
	if apiErr := requireRole(user, model.RoleAdmin, model.RoleOperador); apiErr != nil {
		return nil, apiErr
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	existing, err := t.store.GetDeviceByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "device not found"}
	}

	if err := t.store.SetDeviceStatus(id, status); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update device status"}
	}

	t.audit.Record(&user.ID, &id, action, gin.H{
		"old_status": existing.Status,
		"new_status": status,
	})

	return gin.H{"success": "device " + status}, nil
}

// GET /api/admin/devices/:id/banners
func (t *DeviceController) getAssignedBanners(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if _, err := t.store.GetDeviceByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "device not found"}
	}

	ids, err := t.store.ListBannerIDsForDevice(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list assignments"}
	}
	return gin.H{"banner_ids": ids}, nil
}

// PUT /api/admin/devices/:id/banners
// Replaces the device's whole assignment set. Saving the same selection
// twice yields the same final set as saving it once.
func (t *DeviceController) assignBanners(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireRole(user, model.RoleAdmin, model.RoleOperador); apiErr != nil {
		return nil, apiErr
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if _, err := t.store.GetDeviceByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "device not found"}
	}

	var request packets.AssignBannersRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	for _, bannerID := range request.BannerIDs {
		if _, err := t.store.GetBannerByID(bannerID); err != nil {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "banner not found"}
		}
	}

	if err := t.store.ReplaceDeviceBanners(id, request.BannerIDs); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save assignments"}
	}

	// the player's cached feed is stale now; drop it and nudge the device
	redis.InvalidateBannerFeed(ctx, id)
	mqttbus.PublishRefresh(id)

	t.audit.Record(&user.ID, &id, "assign_banners", gin.H{"banners": request.BannerIDs})

	log.Info().Int("device_id", id).Ints("banner_ids", request.BannerIDs).
		Msg("replaced device banner assignments")

	return gin.H{"success": "banners assigned"}, nil
}
