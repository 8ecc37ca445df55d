package packets

type DeviceLoginRequest struct {
	Name string `json:"name" binding:"required"`
}

type DeviceLoginResponse struct {
	DeviceID int    `json:"device_id"`
	Name     string `json:"name"`
}

// PlayerBanner is the slim banner view a playback device needs.
type PlayerBanner struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
	Duration int    `json:"duration"`
	OrderNum int    `json:"order_num"`
}

// BannerFeed is the cached payload served to players, tagged for
// If-None-Match revalidation.
type BannerFeed struct {
	ETag    string         `json:"etag"`
	Banners []PlayerBanner `json:"banners"`
}
