package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NovaMidia-Tec/painel/internal/db"
	"github.com/NovaMidia-Tec/painel/internal/http/api"
	"github.com/NovaMidia-Tec/painel/internal/http/api/admin/packets"
	"github.com/NovaMidia-Tec/painel/internal/model"
	"github.com/NovaMidia-Tec/painel/internal/presence"
)

type DashboardController struct {
	store db.Store
}

// DashboardModule mounts the summary endpoint the admin landing page polls.
func DashboardModule(store db.Store) api.Module {
	ctl := &DashboardController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/dashboard", ctl.getDashboard)
	})
}

// GET /api/admin/dashboard
// Counts are recomputed from scratch on every call; the caller polls this
// on a fixed interval, so between polls they may be stale by up to one
// interval.
func (d *DashboardController) getDashboard(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	banners, err := d.store.ListBanners()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load dashboard"}
	}
	devices, err := d.store.ListDevices()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load dashboard"}
	}

	resp := packets.DashboardResponse{
		BannersByCompany: make(map[string]int),
	}
	for _, b := range banners {
		if b.Status == model.BannerStatusActive {
			resp.BannersActive++
		} else {
			resp.BannersInactive++
		}
		resp.BannersByCompany[b.Company]++
	}

	resp.DevicesOnline, resp.DevicesOffline = presence.Count(devices, time.Now())

	return resp, nil
}
