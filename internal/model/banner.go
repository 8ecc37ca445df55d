package model

import "time"

// Banner statuses and media types as stored in the banners table.
const (
	BannerStatusActive   = "active"
	BannerStatusInactive = "inactive"

	FileTypeImage = "image"
	FileTypeVideo = "video"
)

// Banner is a timed media asset shown on a device display.
type Banner struct {
	ID                int       `db:"id"                  json:"id"`
	Title             string    `db:"title"               json:"title"`
	Company           string    `db:"company"             json:"company"`
	FileURL           string    `db:"file_url"            json:"file_url"`
	FileType          string    `db:"file_type"           json:"file_type"`
	Duration          int       `db:"duration"            json:"duration"`
	OrderNum          int       `db:"order_num"           json:"order_num"`
	ContractStartDate time.Time `db:"contract_start_date" json:"contract_start_date"`
	ContractEndDate   time.Time `db:"contract_end_date"   json:"contract_end_date"`
	Status            string    `db:"status"              json:"status"`
	CreatedAt         time.Time `db:"created_at"          json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"          json:"updated_at"`
}
