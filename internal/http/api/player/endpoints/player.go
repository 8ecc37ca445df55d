package endpoints

import (
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/NovaMidia-Tec/painel/internal/audit"
	"github.com/NovaMidia-Tec/painel/internal/db"
	"github.com/NovaMidia-Tec/painel/internal/http/api/player/packets"
	"github.com/NovaMidia-Tec/painel/internal/model"
	"github.com/NovaMidia-Tec/painel/internal/redis"
)

// feedCacheTTL bounds how stale a cached feed can get; it matches the
// player's poll interval.
const feedCacheTTL = 30 * time.Second

type PlayerController struct {
	store db.Store
	audit *audit.Recorder
}

func NewPlayerController(store db.Store, rec *audit.Recorder) *PlayerController {
	return &PlayerController{store: store, audit: rec}
}

// RegisterPlayerRoutes mounts the public playback surface: device login by
// name, the assigned-banner feed, and the heartbeat write.
func RegisterPlayerRoutes(r gin.IRoutes, store db.Store, rec *audit.Recorder) {
	ctl := NewPlayerController(store, rec)

	r.POST("/login", ctl.deviceLogin)
	r.GET("/devices/:id/banners", ctl.getBannerFeed)
	r.POST("/devices/:id/heartbeat", ctl.heartbeat)
}

// deviceLogin resolves a human-entered device name to a device id. Unknown
// names are rejected, as are devices that were deactivated, regardless of
// how recently they were seen.
func (p *PlayerController) deviceLogin(c *gin.Context) {
	var request packets.DeviceLoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, err := p.store.GetDeviceByName(request.Name)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Str("name", request.Name).Msg("device login lookup failed")
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}

	if device.Status != model.DeviceStatusActive {
		log.Warn().Str("name", request.Name).Msg("rejected login for inactive device")
		c.JSON(http.StatusForbidden, gin.H{"error": "device inactive"})
		return
	}

	p.audit.Record(nil, &device.ID, "device_login", gin.H{"name": device.Name})

	c.JSON(http.StatusOK, packets.DeviceLoginResponse{DeviceID: device.ID, Name: device.Name})
}

// getBannerFeed serves the device's assigned, active banners in display
// order. The serialized feed is cached in Redis for one poll interval and
// revalidated with If-None-Match.
func (p *PlayerController) getBannerFeed(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := p.store.GetDeviceByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}

	feed, ok := p.cachedFeed(c, id)
	if !ok {
		banners, err := p.store.ListActiveBannersForDevice(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load banners"})
			return
		}
		feed = buildFeed(banners)
		p.cacheFeed(c, id, feed)
	}

	c.Header("ETag", feed.ETag)
	if match := c.GetHeader("If-None-Match"); match != "" && match == feed.ETag {
		c.Status(http.StatusNotModified)
		return
	}

	c.JSON(http.StatusOK, feed)
}

// heartbeat overwrites the device's last-seen timestamp with now. The
// caller needs no acknowledgment beyond the status code.
func (p *PlayerController) heartbeat(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := p.store.GetDeviceByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}

	if err := p.store.TouchDevice(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record heartbeat"})
		return
	}

	c.Status(http.StatusNoContent)
}

func buildFeed(banners []model.Banner) packets.BannerFeed {
	out := make([]packets.PlayerBanner, 0, len(banners))
	for _, b := range banners {
		out = append(out, packets.PlayerBanner{
			ID:       b.ID,
			Title:    b.Title,
			FileURL:  b.FileURL,
			FileType: b.FileType,
			Duration: b.Duration,
			OrderNum: b.OrderNum,
		})
	}

	raw, _ := json.Marshal(out)
	sum := sha1.Sum(raw)

	return packets.BannerFeed{
		ETag:    hex.EncodeToString(sum[:]),
		Banners: out,
	}
}

func (p *PlayerController) cachedFeed(c *gin.Context, deviceID int) (packets.BannerFeed, bool) {
	if !redis.Enabled() {
		return packets.BannerFeed{}, false
	}
	var feed packets.BannerFeed
	if err := redis.GetUnmarshalledJSON(c, redis.BannerFeedKey(deviceID), &feed); err != nil {
		return packets.BannerFeed{}, false
	}
	return feed, true
}

func (p *PlayerController) cacheFeed(c *gin.Context, deviceID int, feed packets.BannerFeed) {
	if !redis.Enabled() {
		return
	}
	raw, err := json.Marshal(feed)
	if err != nil {
		return
	}
	redis.Set(c, redis.BannerFeedKey(deviceID), raw, feedCacheTTL)
}
