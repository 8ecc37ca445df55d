package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NovaMidia-Tec/painel/internal/model"
)

func (s *pgStore) CreateBanner(
	title, company, fileURL, fileType string,
	duration, orderNum int,
	contractStart, contractEnd time.Time,
) (model.Banner, error) {
	var b model.Banner
	query := `
	INSERT INTO banners
	(title, company, file_url, file_type, duration, order_num,
	 contract_start_date, contract_end_date, status, created_at, updated_at)
	VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, 'active', now(), now())
	RETURNING
	id, title, company, file_url, file_type, duration, order_num,
	contract_start_date, contract_end_date, status, created_at, updated_at;`

	if err := s.db.Get(&b, query,
		title,
		company,
		fileURL,
		fileType,
		duration,
		orderNum,
		contractStart,
		contractEnd,
	); err != nil {
		log.Error().Err(err).Str("title", title).Msg("failed to create banner")
		return model.Banner{}, err
	}
	return b, nil
}

func (s *pgStore) GetBannerByID(id int) (model.Banner, error) {
	var b model.Banner
	query := `
	SELECT
	id, title, company, file_url, file_type, duration, order_num,
	contract_start_date, contract_end_date, status, created_at, updated_at
	FROM banners
	WHERE id = $1;`

	err := s.db.Get(&b, query, id)
	return b, err
}

// ListBannersByStatus returns banners with the given status. Active banners
// come back in display order, inactive ones newest first.
func (s *pgStore) ListBannersByStatus(status string) ([]model.Banner, error) {
	order := `order_num`
	if status == model.BannerStatusInactive {
		order = `created_at DESC`
	}
	var all []model.Banner
	query := `
	SELECT
	id, title, company, file_url, file_type, duration, order_num,
	contract_start_date, contract_end_date, status, created_at, updated_at
	FROM banners
	WHERE status = $1
	ORDER BY ` + order + `;`

	if err := s.db.Select(&all, query, status); err != nil {
		log.Error().Err(err).Str("status", status).Msg("failed to list banners")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) ListBanners() ([]model.Banner, error) {
	var all []model.Banner
	query := `
	SELECT
	id, title, company, file_url, file_type, duration, order_num,
	contract_start_date, contract_end_date, status, created_at, updated_at
	FROM banners
	ORDER BY order_num;`

	if err := s.db.Select(&all, query); err != nil {
		log.Error().Err(err).Msg("failed to list banners")
		return nil, err
	}
	return all, nil
}

// NextBannerOrderNum returns max(order_num)+1 so a new banner lists last.
func (s *pgStore) NextBannerOrderNum() (int, error) {
	var next int
	err := s.db.Get(&next, `SELECT COALESCE(MAX(order_num), 0) + 1 FROM banners;`)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute next banner order")
		return 0, err
	}
	return next, nil
}

func (s *pgStore) UpdateBanner(
	id int,
	title, company *string,
	duration *int,
	contractStart, contractEnd *time.Time,
) error {
	_, err := s.db.Exec(`
		UPDATE banners
		SET
		title               = COALESCE($2, title),
		company             = COALESCE($3, company),
		duration            = COALESCE($4, duration),
		contract_start_date = COALESCE($5, contract_start_date),
		contract_end_date   = COALESCE($6, contract_end_date),
		updated_at          = now()
		WHERE id = $1;`,
		id, title, company, duration, contractStart, contractEnd,
	)
	if err != nil {
		log.Error().Err(err).Int("banner_id", id).Msg("failed to update banner")
	}
	return err
}

func (s *pgStore) SetBannerStatus(id int, status string) error {
	_, err := s.db.Exec(`
		UPDATE banners
		SET status = $2,
		updated_at = now()
		WHERE id = $1;`, id, status)
	if err != nil {
		log.Error().Err(err).Int("banner_id", id).Str("status", status).
			Msg("failed to set banner status")
	}
	return err
}

func (s *pgStore) DeleteBanner(id int) error {
	_, err := s.db.Exec(`DELETE FROM banners WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("banner_id", id).Msg("failed to delete banner")
	}
	return err
}
