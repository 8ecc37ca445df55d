package packets

import "encoding/json"

type ProfileResponse struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type UserResponse struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type DeviceResponse struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	LastSeen  *string `json:"last_seen"`
	Online    bool    `json:"online"`
	CreatedAt string  `json:"created_at"`
}

type BannerResponse struct {
	ID                int    `json:"id"`
	Title             string `json:"title"`
	Company           string `json:"company"`
	FileURL           string `json:"file_url"`
	FileType          string `json:"file_type"`
	Duration          int    `json:"duration"`
	OrderNum          int    `json:"order_num"`
	ContractStartDate string `json:"contract_start_date"`
	ContractEndDate   string `json:"contract_end_date"`
	Status            string `json:"status"`
	CreatedAt         string `json:"created_at"`
}

type DashboardResponse struct {
	BannersActive    int            `json:"banners_active"`
	BannersInactive  int            `json:"banners_inactive"`
	DevicesOnline    int            `json:"devices_online"`
	DevicesOffline   int            `json:"devices_offline"`
	BannersByCompany map[string]int `json:"banners_by_company"`
}

type LogResponse struct {
	ID        int             `json:"id"`
	UserID    *int            `json:"user_id"`
	DeviceID  *int            `json:"device_id"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details"`
	CreatedAt string          `json:"created_at"`
}
