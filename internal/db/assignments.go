package db

import (
	"github.com/rs/zerolog/log"

	"github.com/NovaMidia-Tec/painel/internal/model"
)

func (s *pgStore) ListBannerIDsForDevice(deviceID int) ([]int, error) {
	var ids []int
	err := s.db.Select(&ids, `
		SELECT banner_id
		FROM device_banners
		WHERE device_id = $1
		ORDER BY banner_id
		`, deviceID)
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).
			Msg("failed to list banner ids for device")
		return nil, err
	}
	return ids, nil
}

// ListActiveBannersForDevice returns the device's assigned, currently-active
// banners in display order. This is the sequence the player loops over.
func (s *pgStore) ListActiveBannersForDevice(deviceID int) ([]model.Banner, error) {
	var banners []model.Banner
	err := s.db.Select(&banners, `
		SELECT
		b.id, b.title, b.company, b.file_url, b.file_type, b.duration, b.order_num,
		b.contract_start_date, b.contract_end_date, b.status, b.created_at, b.updated_at
		FROM device_banners db
		JOIN banners b ON b.id = db.banner_id
		WHERE db.device_id = $1 AND b.status = 'active'
		ORDER BY b.order_num
		`, deviceID)
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).
			Msg("failed to list active banners for device")
		return nil, err
	}
	return banners, nil
}

// ReplaceDeviceBanners swaps the device's whole assignment set in one
// transaction, so readers never observe a transient empty set.
func (s *pgStore) ReplaceDeviceBanners(deviceID int, bannerIDs []int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).
			Msg("failed to begin assignment transaction")
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM device_banners WHERE device_id = $1`, deviceID); err != nil {
		log.Error().Err(err).Int("device_id", deviceID).
			Msg("failed to clear device assignments")
		return err
	}

	for _, bannerID := range bannerIDs {
		if _, err := tx.Exec(`
			INSERT INTO device_banners (device_id, banner_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
			`, deviceID, bannerID); err != nil {
			log.Error().Err(err).Int("device_id", deviceID).Int("banner_id", bannerID).
				Msg("failed to insert device assignment")
			return err
		}
	}

	return tx.Commit()
}
