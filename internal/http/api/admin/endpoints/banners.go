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
	"github.com/NovaMidia-Tec/painel/internal/storage"
)

type BannerController struct {
	store   db.Store
	storage storage.Storage
	audit   *audit.Recorder
}

func newBannerController(store db.Store, storageSystem storage.Storage, rec *audit.Recorder) *BannerController {
	return &BannerController{store: store, storage: storageSystem, audit: rec}
}

// BannerModule mounts all authenticated /banners endpoints. Any role can
// view; mutations need admin or operador.
func BannerModule(store db.Store, storageSystem storage.Storage, rec *audit.Recorder) api.Module {
	ctl := newBannerController(store, storageSystem, rec)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/banners", ctl.listBanners)
		c.GET("/banners/:id", ctl.getBanner)
		c.POST("/banners", ctl.createBanner)
		c.PUT("/banners/:id", ctl.updateBanner)
		c.POST("/banners/:id/activate", ctl.activateBanner)
		c.POST("/banners/:id/deactivate", ctl.deactivateBanner)
		c.DELETE("/banners/:id", ctl.deleteBanner)
	})
}

func bannerResponse(b model.Banner) packets.BannerResponse {
	return packets.BannerResponse{
		ID:                b.ID,
		Title:             b.Title,
		Company:           b.Company,
		FileURL:           b.FileURL,
		FileType:          b.FileType,
		Duration:          b.Duration,
		OrderNum:          b.OrderNum,
		ContractStartDate: b.ContractStartDate.Format(dateLayout),
		ContractEndDate:   b.ContractEndDate.Format(dateLayout),
		Status:            b.Status,
		CreatedAt:         b.CreatedAt.Format(time.RFC3339),
	}
}

// GET /api/admin/banners?status=active|inactive
func (b *BannerController) listBanners(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	status := ctx.DefaultQuery("status", model.BannerStatusActive)
	if status != model.BannerStatusActive && status != model.BannerStatusInactive {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid status filter"}
	}

	all, err := b.store.ListBannersByStatus(status)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list banners"}
	}

	out := make([]packets.BannerResponse, 0, len(all))
	for _, x := range all {
		out = append(out, bannerResponse(x))
	}
	return out, nil
}

// GET /api/admin/banners/:id
func (b *BannerController) getBanner(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	banner, err := b.store.GetBannerByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "banner not found"}
	}
	return bannerResponse(banner), nil
}

// POST /api/admin/banners
// Multipart form: title, company, duration, contract_start_date,
// contract_end_date, file. Everything is validated before any storage or
// database call.
func (b *BannerController) createBanner(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireRole(user, model.RoleAdmin, model.RoleOperador); apiErr != nil {
		return nil, apiErr
	}

	title := ctx.PostForm("title")
	company := ctx.PostForm("company")
	if title == "" || company == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing required form fields"}
	}

	duration, err := strconv.Atoi(ctx.PostForm("duration"))
	if err != nil || duration <= 0 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "duration must be a positive number of seconds"}
	}

	contractStart, err := parseDate(ctx.PostForm("contract_start_date"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid contract start date"}
	}
	contractEnd, err := parseDate(ctx.PostForm("contract_end_date"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid contract end date"}
	}
	if !contractEnd.After(contractStart) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "contract end date must be after the start date"}
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "media file is required"}
	}

	fileType := model.FileTypeImage
	if storage.IsVideo(fileHeader.Filename) {
		fileType = model.FileTypeVideo
	}

	orderNum, err := b.store.NextBannerOrderNum()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create banner"}
	}

	fileURL, err := b.storage.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("banner upload failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save media file"}
	}

	banner, err := b.store.CreateBanner(title, company, fileURL, fileType, duration, orderNum, contractStart, contractEnd)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create banner"}
	}

	b.audit.Record(&user.ID, nil, "add_banner", gin.H{
		"banner_id": banner.ID,
		"title":     title,
		"company":   company,
	})

	return bannerResponse(banner), nil
}

// PUT /api/admin/banners/:id
func (b *BannerController) updateBanner(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireRole(user, model.RoleAdmin, model.RoleOperador); apiErr != nil {
		return nil, apiErr
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	existing, err := b.store.GetBannerByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "banner not found"}
	}

	var request packets.UpdateBannerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if request.Duration != nil && *request.Duration <= 0 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "duration must be a positive number of seconds"}
	}

	// resolve the effective contract window before touching the store
	startDate := existing.ContractStartDate
	endDate := existing.ContractEndDate
	var startPtr, endPtr *time.Time
	if request.ContractStartDate != nil {
		parsed, err := parseDate(*request.ContractStartDate)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid contract start date"}
		}
		startDate, startPtr = parsed, &parsed
	}
	if request.ContractEndDate != nil {
		parsed, err := parseDate(*request.ContractEndDate)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid contract end date"}
		}
		endDate, endPtr = parsed, &parsed
	}
	if !endDate.After(startDate) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "contract end date must be after the start date"}
	}

	if err := b.store.UpdateBanner(id, request.Title, request.Company, request.Duration, startPtr, endPtr); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update banner"}
	}

	b.audit.Record(&user.ID, nil, "edit_banner", gin.H{"banner_id": id})

	updated, err := b.store.GetBannerByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not fetch updated banner"}
	}
	return bannerResponse(updated), nil
}

// POST /api/admin/banners/:id/activate
func (b *BannerController) activateBanner(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return b.setStatus(ctx, user, model.BannerStatusActive, "reactivate_banner")
}

// POST /api/admin/banners/:id/deactivate
func (b *BannerController) deactivateBanner(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return b.setStatus(ctx, user, model.BannerStatusInactive, "deactivate_banner")
}

func (b *BannerController) setStatus(ctx *gin.Context, user *model.User, status, action string) (any, *api.APIError) {
	if apiErr := requireRole(user, model.RoleAdmin, model.RoleOperador); apiErr != nil {
		return nil, apiErr
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if _, err := b.store.GetBannerByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "banner not found"}
	}

	if err := b.store.SetBannerStatus(id, status); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update banner status"}
	}

	b.audit.Record(&user.ID, nil, action, gin.H{"banner_id": id})

	return gin.H{"success": "banner " + status}, nil
}

// DELETE /api/admin/banners/:id
// Hard delete is only allowed while the banner is inactive.
func (b *BannerController) deleteBanner(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireRole(user, model.RoleAdmin, model.RoleOperador); apiErr != nil {
		return nil, apiErr
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	existing, err := b.store.GetBannerByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "banner not found"}
	}
	if existing.Status != model.BannerStatusInactive {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "banner must be deactivated before deletion"}
	}

	if err := b.store.DeleteBanner(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete banner"}
	}

	b.audit.Record(&user.ID, nil, "delete_banner", gin.H{"banner_id": id})

	return gin.H{"success": "banner deleted"}, nil
}
