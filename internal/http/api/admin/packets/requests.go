package packets

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type CreateDeviceRequest struct {
	Name   string `json:"name" binding:"required"`
	Status string `json:"status"`
}

// UpdateBannerRequest carries the editable banner fields; nil means keep.
type UpdateBannerRequest struct {
	Title             *string `json:"title"`
	Company           *string `json:"company"`
	Duration          *int    `json:"duration"`
	ContractStartDate *string `json:"contract_start_date"`
	ContractEndDate   *string `json:"contract_end_date"`
}

type AssignBannersRequest struct {
	BannerIDs []int `json:"banner_ids"`
}
