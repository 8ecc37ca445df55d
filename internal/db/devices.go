package db

import (
	"github.com/rs/zerolog/log"

	"github.com/NovaMidia-Tec/painel/internal/model"
)

func (s *pgStore) CreateDevice(name, status string) (model.Device, error) {
	var d model.Device
	q := `
	INSERT INTO devices (name, status, last_seen, created_at, updated_at)
	VALUES ($1, $2, now(), now(), now())
	RETURNING id, name, status, last_seen, created_at, updated_at;`
	if err := s.db.Get(&d, q, name, status); err != nil {
		log.Error().Err(err).Str("name", name).Msg("failed to create device")
		return model.Device{}, err
	}
	return d, nil
}

func (s *pgStore) GetDeviceByID(id int) (model.Device, error) {
	var d model.Device
	err := s.db.Get(&d, `
		SELECT id, name, status, last_seen, created_at, updated_at
		FROM devices
		WHERE id = $1
		`, id)
	if err != nil {
		log.Error().Err(err).Int("device_id", id).Msg("failed to get device by id")
	}
	return d, err
}

func (s *pgStore) GetDeviceByName(name string) (model.Device, error) {
	var d model.Device
	err := s.db.Get(&d, `
		SELECT id, name, status, last_seen, created_at, updated_at
		FROM devices
		WHERE name = $1
		`, name)
	return d, err
}

func (s *pgStore) ListDevices() ([]model.Device, error) {
	var devices []model.Device
	err := s.db.Select(&devices, `
		SELECT id, name, status, last_seen, created_at, updated_at
		FROM devices
		ORDER BY name
		`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list devices")
		return nil, err
	}
	return devices, nil
}

func (s *pgStore) SetDeviceStatus(id int, status string) error {
	_, err := s.db.Exec(`
		UPDATE devices
		SET status = $2,
		updated_at = now()
		WHERE id = $1
		`, id, status)
	if err != nil {
		log.Error().Err(err).Int("device_id", id).Str("status", status).
			Msg("failed to set device status")
	}
	return err
}

// TouchDevice overwrites the device's last_seen with the current instant.
func (s *pgStore) TouchDevice(id int) error {
	_, err := s.db.Exec(`
		UPDATE devices
		SET last_seen = now()
		WHERE id = $1
		`, id)
	if err != nil {
		log.Error().Err(err).Int("device_id", id).Msg("failed to touch device")
	}
	return err
}
