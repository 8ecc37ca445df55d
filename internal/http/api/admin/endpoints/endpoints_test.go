package endpoints

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NovaMidia-Tec/painel/internal/audit"
	"github.com/NovaMidia-Tec/painel/internal/http/api"
	"github.com/NovaMidia-Tec/painel/internal/http/middleware"
	"github.com/NovaMidia-Tec/painel/internal/model"
)

const testSecret = "test-secret"

// fakeStore is an in-memory db.Store for handler tests.
type fakeStore struct {
	users   map[int]model.User
	devices map[int]model.Device
	banners map[int]model.Banner

	// assignments maps device id to its banner id set
	assignments map[int][]int

	logs   []model.LogEntry
	nextID int

	createBannerCalls int
	replaceCalls      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[int]model.User),
		devices:     make(map[int]model.Device),
		banners:     make(map[int]model.Banner),
		assignments: make(map[int][]int),
		nextID:      1,
	}
}

func (f *fakeStore) id() int {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) CreateUser(email, hashedPassword, role string) (int, error) {
	id := f.id()
	f.users[id] = model.User{
		ID:             id,
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           role,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	return id, nil
}

func (f *fakeStore) GetUserByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetUserByID(id int) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (f *fakeStore) ListUsers() ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) UpdateUserRole(id int, role string) error {
	u, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.Role = role
	f.users[id] = u
	return nil
}

func (f *fakeStore) DeleteUser(id int) error {
	delete(f.users, id)
	return nil
}

func (f *fakeStore) CreateDevice(name, status string) (model.Device, error) {
	now := time.Now()
	d := model.Device{
		ID:        f.id(),
		Name:      name,
		Status:    status,
		LastSeen:  &now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.devices[d.ID] = d
	return d, nil
}

func (f *fakeStore) GetDeviceByID(id int) (model.Device, error) {
	d, ok := f.devices[id]
	if !ok {
		return model.Device{}, sql.ErrNoRows
	}
	return d, nil
}

func (f *fakeStore) GetDeviceByName(name string) (model.Device, error) {
	for _, d := range f.devices {
		if d.Name == name {
			return d, nil
		}
	}
	return model.Device{}, sql.ErrNoRows
}

func (f *fakeStore) ListDevices() ([]model.Device, error) {
	out := make([]model.Device, 0, len(f.devices))
	for _, d := range f.devices {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) SetDeviceStatus(id int, status string) error {
	d, ok := f.devices[id]
	if !ok {
		return sql.ErrNoRows
	}
	d.Status = status
	f.devices[id] = d
	return nil
}

func (f *fakeStore) TouchDevice(id int) error {
	d, ok := f.devices[id]
	if !ok {
		return sql.ErrNoRows
	}
	now := time.Now()
	d.LastSeen = &now
	f.devices[id] = d
	return nil
}

func (f *fakeStore) CreateBanner(
	title, company, fileURL, fileType string,
	duration, orderNum int,
	contractStart, contractEnd time.Time,
) (model.Banner, error) {
	f.createBannerCalls++
	b := model.Banner{
		ID:                f.id(),
		Title:             title,
		Company:           company,
		FileURL:           fileURL,
		FileType:          fileType,
		Duration:          duration,
		OrderNum:          orderNum,
		ContractStartDate: contractStart,
		ContractEndDate:   contractEnd,
		Status:            model.BannerStatusActive,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	f.banners[b.ID] = b
	return b, nil
}

func (f *fakeStore) GetBannerByID(id int) (model.Banner, error) {
	b, ok := f.banners[id]
	if !ok {
		return model.Banner{}, sql.ErrNoRows
	}
	return b, nil
}

func (f *fakeStore) ListBannersByStatus(status string) ([]model.Banner, error) {
	var out []model.Banner
	for _, b := range f.banners {
		if b.Status == status {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNum < out[j].OrderNum })
	return out, nil
}

func (f *fakeStore) ListBanners() ([]model.Banner, error) {
	out := make([]model.Banner, 0, len(f.banners))
	for _, b := range f.banners {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNum < out[j].OrderNum })
	return out, nil
}

func (f *fakeStore) NextBannerOrderNum() (int, error) {
	max := 0
	for _, b := range f.banners {
		if b.OrderNum > max {
			max = b.OrderNum
		}
	}
	return max + 1, nil
}

func (f *fakeStore) UpdateBanner(
	id int,
	title, company *string,
	duration *int,
	contractStart, contractEnd *time.Time,
) error {
	b, ok := f.banners[id]
	if !ok {
		return sql.ErrNoRows
	}
	if title != nil {
		b.Title = *title
	}
	if company != nil {
		b.Company = *company
	}
	if duration != nil {
		b.Duration = *duration
	}
	if contractStart != nil {
		b.ContractStartDate = *contractStart
	}
	if contractEnd != nil {
		b.ContractEndDate = *contractEnd
	}
	f.banners[id] = b
	return nil
}

func (f *fakeStore) SetBannerStatus(id int, status string) error {
	b, ok := f.banners[id]
	if !ok {
		return sql.ErrNoRows
	}
	b.Status = status
	f.banners[id] = b
	return nil
}

func (f *fakeStore) DeleteBanner(id int) error {
	delete(f.banners, id)
	return nil
}

func (f *fakeStore) ListBannerIDsForDevice(deviceID int) ([]int, error) {
	ids := append([]int(nil), f.assignments[deviceID]...)
	sort.Ints(ids)
	return ids, nil
}

func (f *fakeStore) ListActiveBannersForDevice(deviceID int) ([]model.Banner, error) {
	var out []model.Banner
	for _, id := range f.assignments[deviceID] {
		b, ok := f.banners[id]
		if ok && b.Status == model.BannerStatusActive {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNum < out[j].OrderNum })
	return out, nil
}

func (f *fakeStore) ReplaceDeviceBanners(deviceID int, bannerIDs []int) error {
	f.replaceCalls++
	seen := make(map[int]bool)
	var set []int
	for _, id := range bannerIDs {
		if !seen[id] {
			seen[id] = true
			set = append(set, id)
		}
	}
	f.assignments[deviceID] = set
	return nil
}

func (f *fakeStore) InsertLog(userID, deviceID *int, action string, details json.RawMessage) error {
	f.logs = append(f.logs, model.LogEntry{
		ID:        f.id(),
		UserID:    userID,
		DeviceID:  deviceID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	})
	return nil
}

func (f *fakeStore) ListLogs() ([]model.LogEntry, error) {
	out := make([]model.LogEntry, len(f.logs))
	copy(out, f.logs)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// lastAction returns the action of the most recent log entry, or "".
func (f *fakeStore) lastAction() string {
	if len(f.logs) == 0 {
		return ""
	}
	return f.logs[len(f.logs)-1].Action
}

// fakeSaver is an in-memory storage.Storage.
type fakeSaver struct {
	saved []string
}

func (f *fakeSaver) SaveFile(fileHeader *multipart.FileHeader, filename string) (string, error) {
	f.saved = append(f.saved, filename)
	return "https://cdn.test/" + filename, nil
}

// seedUser creates a user with the given role and returns its id and a
// valid bearer token.
func seedUser(store *fakeStore, email, role string) (int, string) {
	hashed, _ := middleware.HashPassword("password123")
	id, _ := store.CreateUser(email, hashed, role)
	token, _ := middleware.GenerateJWT(id, testSecret)
	return id, token
}

// newTestRouter mounts the full admin surface the way the server does:
// store injection, then a public group and an authenticated group.
func newTestRouter(store *fakeStore, saver *fakeSaver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.InjectStore(store))

	rec := audit.NewRecorder(store)

	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin"},
		AuthPublicModule(testSecret, store, rec),
	)
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin", Auth: true, SecretKey: testSecret},
		AuthSessionModule(testSecret, store, rec),
		UsersModule(store, rec),
		BannerModule(store, saver, rec),
		DeviceModule(store, rec),
		DashboardModule(store),
		LogsModule(store),
	)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		raw, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
