package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovaMidia-Tec/painel/internal/model"
)

func TestDashboardCounts(t *testing.T) {
	store := newFakeStore()
	_, token := seedUser(store, "view@test.local", model.RoleVisualizador)
	r := newTestRouter(store, &fakeSaver{})

	seedBanner(store, "a", 5, model.BannerStatusActive)
	seedBanner(store, "b", 5, model.BannerStatusActive)
	seedBanner(store, "c", 5, model.BannerStatusInactive)

	_, err := store.CreateDevice("Online TV", model.DeviceStatusActive)
	require.NoError(t, err)
	stale, err := store.CreateDevice("Offline TV", model.DeviceStatusActive)
	require.NoError(t, err)
	old := time.Now().Add(-time.Hour)
	stale.LastSeen = &old
	store.devices[stale.ID] = stale

	w := doJSON(r, http.MethodGet, "/api/admin/dashboard", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["banners_active"])
	assert.Equal(t, float64(1), resp["banners_inactive"])
	assert.Equal(t, float64(1), resp["devices_online"])
	assert.Equal(t, float64(1), resp["devices_offline"])

	byCompany := resp["banners_by_company"].(map[string]any)
	assert.Equal(t, float64(3), byCompany["Acme"])
}

func TestLogsVisibleToAdminAndOperador(t *testing.T) {
	store := newFakeStore()
	_, adminToken := seedUser(store, "admin@test.local", model.RoleAdmin)
	_, opToken := seedUser(store, "op@test.local", model.RoleOperador)
	_, viewToken := seedUser(store, "view@test.local", model.RoleVisualizador)
	r := newTestRouter(store, &fakeSaver{})

	require.NoError(t, store.InsertLog(nil, nil, "add_banner", nil))

	for _, token := range []string{adminToken, opToken} {
		w := doJSON(r, http.MethodGet, "/api/admin/logs", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp)
		assert.Equal(t, "add_banner", resp[0]["action"])
	}

	w := doJSON(r, http.MethodGet, "/api/admin/logs", viewToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
