package db

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovaMidia-Tec/painel/internal/model"
)

// TestStoreIntegration runs the store against a real Postgres. Set
// TEST_DATABASE_URL to enable it.
func TestStoreIntegration(t *testing.T) {
	if err := InitTestDB("../../migrations"); err != nil {
		t.Skipf("skipping store integration test: %v", err)
	}
	store := TestStore

	suffix := time.Now().UnixNano()

	t.Run("Users", func(t *testing.T) {
		email := fmt.Sprintf("it-%d@test.local", suffix)

		userID, err := store.CreateUser(email, "hashed", model.RoleOperador)
		require.NoError(t, err)
		assert.Greater(t, userID, 0)

		user, err := store.GetUserByEmail(email)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, model.RoleOperador, user.Role)

		require.NoError(t, store.UpdateUserRole(userID, model.RoleAdmin))
		user, err = store.GetUserByID(userID)
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)

		missing, err := store.GetUserByEmail("nobody@test.local")
		require.NoError(t, err)
		assert.Nil(t, missing)

		require.NoError(t, store.DeleteUser(userID))
	})

	t.Run("Devices", func(t *testing.T) {
		name := fmt.Sprintf("it-device-%d", suffix)

		device, err := store.CreateDevice(name, model.DeviceStatusActive)
		require.NoError(t, err)
		assert.Equal(t, name, device.Name)
		require.NotNil(t, device.LastSeen)

		byName, err := store.GetDeviceByName(name)
		require.NoError(t, err)
		assert.Equal(t, device.ID, byName.ID)

		require.NoError(t, store.SetDeviceStatus(device.ID, model.DeviceStatusInactive))
		got, err := store.GetDeviceByID(device.ID)
		require.NoError(t, err)
		assert.Equal(t, model.DeviceStatusInactive, got.Status)

		before := *got.LastSeen
		time.Sleep(10 * time.Millisecond)
		require.NoError(t, store.TouchDevice(device.ID))
		got, err = store.GetDeviceByID(device.ID)
		require.NoError(t, err)
		assert.True(t, got.LastSeen.After(before))
	})

	t.Run("BannersAndAssignments", func(t *testing.T) {
		device, err := store.CreateDevice(fmt.Sprintf("it-screen-%d", suffix), model.DeviceStatusActive)
		require.NoError(t, err)

		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

		orderNum, err := store.NextBannerOrderNum()
		require.NoError(t, err)

		first, err := store.CreateBanner("it-first", "Acme", "https://cdn.test/a.jpg",
			model.FileTypeImage, 10, orderNum, start, end)
		require.NoError(t, err)
		assert.Equal(t, model.BannerStatusActive, first.Status)

		orderNum, err = store.NextBannerOrderNum()
		require.NoError(t, err)
		assert.Equal(t, first.OrderNum+1, orderNum)

		second, err := store.CreateBanner("it-second", "Acme", "https://cdn.test/b.mp4",
			model.FileTypeVideo, 30, orderNum, start, end)
		require.NoError(t, err)

		require.NoError(t, store.ReplaceDeviceBanners(device.ID, []int{first.ID, second.ID}))
		feed, err := store.ListActiveBannersForDevice(device.ID)
		require.NoError(t, err)
		require.Len(t, feed, 2)
		assert.Equal(t, first.ID, feed[0].ID)

		// deactivated banners drop out of the playback feed but stay assigned
		require.NoError(t, store.SetBannerStatus(second.ID, model.BannerStatusInactive))
		feed, err = store.ListActiveBannersForDevice(device.ID)
		require.NoError(t, err)
		require.Len(t, feed, 1)

		ids, err := store.ListBannerIDsForDevice(device.ID)
		require.NoError(t, err)
		assert.Len(t, ids, 2)

		// replacing with one id, twice, leaves exactly that id
		require.NoError(t, store.ReplaceDeviceBanners(device.ID, []int{first.ID}))
		require.NoError(t, store.ReplaceDeviceBanners(device.ID, []int{first.ID}))
		ids, err = store.ListBannerIDsForDevice(device.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{first.ID}, ids)

		require.NoError(t, store.ReplaceDeviceBanners(device.ID, nil))
		require.NoError(t, store.DeleteBanner(first.ID))
		require.NoError(t, store.DeleteBanner(second.ID))
	})

	t.Run("Logs", func(t *testing.T) {
		require.NoError(t, store.InsertLog(nil, nil, "add_banner", []byte(`{"banner_id":1}`)))
		all, err := store.ListLogs()
		require.NoError(t, err)
		require.NotEmpty(t, all)
		assert.Equal(t, "add_banner", all[0].Action)
	})
}
