// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/NovaMidia-Tec/painel/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword, role string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	ListUsers() ([]model.User, error)
	UpdateUserRole(id int, role string) error
	DeleteUser(id int) error

	// device functions
	CreateDevice(name, status string) (model.Device, error)
	GetDeviceByID(id int) (model.Device, error)
	GetDeviceByName(name string) (model.Device, error)
	ListDevices() ([]model.Device, error)
	SetDeviceStatus(id int, status string) error
	TouchDevice(id int) error

	// banner functions
	CreateBanner(title, company, fileURL, fileType string, duration, orderNum int,
		contractStart, contractEnd time.Time) (model.Banner, error)
	GetBannerByID(id int) (model.Banner, error)
	ListBannersByStatus(status string) ([]model.Banner, error)
	ListBanners() ([]model.Banner, error)
	NextBannerOrderNum() (int, error)
	UpdateBanner(id int, title, company *string, duration *int,
		contractStart, contractEnd *time.Time) error
	SetBannerStatus(id int, status string) error
	DeleteBanner(id int) error

	// device <-> banner assignments
	ListBannerIDsForDevice(deviceID int) ([]int, error)
	ListActiveBannersForDevice(deviceID int) ([]model.Banner, error)
	ReplaceDeviceBanners(deviceID int, bannerIDs []int) error

	// audit log
	InsertLog(userID, deviceID *int, action string, details json.RawMessage) error
	ListLogs() ([]model.LogEntry, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
