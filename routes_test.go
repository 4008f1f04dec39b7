package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"boqportal/models"
	"boqportal/repository"
	"boqportal/services"
	"boqportal/storage"
	"boqportal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	mu       sync.Mutex
	users    map[string]*models.User
	sessions map[string]*models.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{users: map[string]*models.User{}, sessions: map[string]*models.Session{}}
}

func (f *fakeSessions) SaveSession(ctx context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := *session
	f.sessions[s.SessionID] = &s
	return nil
}

func (f *fakeSessions) DeleteSession(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeSessions) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeSessions) GetUserBySessionID(ctx context.Context, sessionID string) (*models.User, *models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok || time.Now().After(s.ExpiresAt) {
		return nil, nil, storage.ErrSessionNotFound
	}
	for _, u := range f.users {
		if u.ID == s.UserID && !u.Suspended {
			return u, s, nil
		}
	}
	return nil, nil, storage.ErrSessionNotFound
}

type fakeActivity struct {
	mu      sync.Mutex
	entries []models.ActivityLog
}

func (f *fakeActivity) SaveActivityLog(ctx context.Context, entry models.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = len(f.entries) + 1
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeActivity) ListActivityLogs(ctx context.Context, limit, offset int) ([]models.ActivityLog, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.ActivityLog{}
	for i := len(f.entries) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.entries[i])
	}
	return out, len(f.entries), nil
}

func (f *fakeActivity) events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for _, e := range f.entries {
		names = append(names, e.EventContext+"/"+e.EventName)
	}
	return names
}

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeObjects) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return "https://files.example/" + key, nil
}

func (f *fakeObjects) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://files.example/" + key + "?signed=1", nil
}

func (f *fakeObjects) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) NotifyPerformaStatus(p models.PerformaGorm, projectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, p.Reference+":"+p.Status+":"+projectName)
	return nil
}

type testEnv struct {
	router    *gin.Engine
	sessions  *fakeSessions
	activity  *fakeActivity
	objects   *fakeObjects
	notifier  *fakeNotifier
	projects  *repository.InMemoryProjectRepository
	performas *repository.InMemoryPerformaRepository
	admin     string
}

func newTestEnv(t *testing.T, withObjects bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		sessions:  newFakeSessions(),
		activity:  &fakeActivity{},
		objects:   &fakeObjects{objects: map[string][]byte{}},
		notifier:  &fakeNotifier{},
		projects:  repository.NewInMemoryProjectRepository(),
		performas: repository.NewInMemoryPerformaRepository(),
	}
	deps := appDeps{
		Sessions:   env.sessions,
		Activity:   env.activity,
		Projects:   env.projects,
		Performas:  env.performas,
		Notifier:   env.notifier,
		Comparison: services.NewComparisonService(env.performas, 16),
	}
	if withObjects {
		deps.Objects = env.objects
	}
	env.router = newRouter(deps, nil)
	env.admin = env.login(t, &models.User{ID: 1, Email: "admin@example.com", FirstName: "Asha", LastName: "Admin", RoleName: models.RoleAdmin})
	return env
}

// login registers the user and opens a session for it directly in the fake store.
func (e *testEnv) login(t *testing.T, user *models.User) string {
	t.Helper()
	e.sessions.mu.Lock()
	e.sessions.users[user.Email] = user
	e.sessions.mu.Unlock()

	sessionID := uuid.NewString()
	require.NoError(t, e.sessions.SaveSession(context.Background(), &models.Session{
		UserID:    user.ID,
		SessionID: sessionID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	token, err := utils.GenerateJWT(user.Email, sessionID)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) upload(t *testing.T, path, token, fileName, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (e *testEnv) createProject(t *testing.T, name string) models.ProjectGorm {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/projects", e.admin, gin.H{"name": name, "currency": "inr"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.ProjectGorm](t, w)
}

func (e *testEnv) createVendor(t *testing.T, name, email string) models.VendorGorm {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/vendors", e.admin, gin.H{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.VendorGorm](t, w)
}

func (e *testEnv) submit(t *testing.T, token string, projectID int, body string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/performas", projectID), token, body)
}

func TestHealthAndAuth(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/projects", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	vendor := env.login(t, &models.User{ID: 2, Email: "v@example.com", FirstName: "Vik", RoleName: models.RoleVendor, VendorID: 77})
	w = env.do(t, http.MethodGet, "/api/projects", vendor, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/api/projects", vendor, gin.H{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(t, http.MethodGet, "/api/logs", vendor, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, "/api/logout", vendor, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/projects", vendor, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, false)
	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)
	env.sessions.mu.Lock()
	env.sessions.users["jane@example.com"] = &models.User{ID: 9, Email: "jane@example.com", Password: hash, RoleName: models.RoleVendor, VendorID: 5}
	env.sessions.mu.Unlock()

	w := env.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "jane@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "jane@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.LoginResponse](t, w)
	assert.Equal(t, models.RoleVendor, resp.Role)
	assert.Equal(t, 5, resp.User.VendorID)

	w = env.do(t, http.MethodGet, "/api/projects", resp.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, env.activity.events(), "Auth/Login")
}

func TestProjectsCategoriesAndVendors(t *testing.T) {
	env := newTestEnv(t, false)

	project := env.createProject(t, "Tower A")
	assert.Equal(t, "INR", project.Currency)
	assert.Equal(t, "Asha Admin", project.CreatedBy)

	w := env.do(t, http.MethodPost, "/api/projects", env.admin, gin.H{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := fmt.Sprintf("/api/projects/%d/categories", project.ProjectID)
	w = env.do(t, http.MethodPost, path, env.admin, gin.H{"name": "Electrical"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = env.do(t, http.MethodPost, path, env.admin, gin.H{"name": "electrical"})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = env.do(t, http.MethodPost, "/api/projects/999/categories", env.admin, gin.H{"name": "Plumbing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, path, env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[models.CategoryListResponse](t, w)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Electrical", list.Data[0].Name)

	vendor := env.createVendor(t, "ABC Electricals", "sales@abc.example")
	w = env.do(t, http.MethodGet, "/api/vendors", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	vendors := decode[[]models.VendorGorm](t, w)
	require.Len(t, vendors, 1)
	assert.Equal(t, vendor.VendorID, vendors[0].VendorID)

	w = env.do(t, http.MethodGet, "/api/projects/abc", env.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ProjectID), env.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ProjectID), env.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitPerforma(t *testing.T) {
	env := newTestEnv(t, false)
	project := env.createProject(t, "Tower A")
	vendor := env.createVendor(t, "ABC Electricals", "sales@abc.example")
	other := env.createVendor(t, "XYZ Power", "")
	vendorToken := env.login(t, &models.User{ID: 2, Email: "v@example.com", FirstName: "Vik", RoleName: models.RoleVendor, VendorID: vendor.VendorID})

	w := env.submit(t, vendorToken, project.ProjectID, `{
		"category": "Electrical",
		"total_amount": "1,500.00 approx",
		"line_items": [
			{"sequence_number": 1, "description": "Wiring", "amount": 1000},
			{"description": "Fixtures", "amount": "500.50"}
		]
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[models.PerformaGorm](t, w)
	assert.Equal(t, "1,500.00 approx", p.TotalAmount)
	assert.Equal(t, vendor.VendorID, p.VendorID)
	assert.Equal(t, "ABC Electricals", p.VendorName)
	assert.Equal(t, "INR", p.Currency)
	assert.Equal(t, models.PerformaPending, p.Status)
	require.Len(t, p.LineItems, 2)
	assert.Equal(t, "Wiring", p.LineItems[0].Description)

	// vendors cannot file on behalf of someone else
	w = env.submit(t, vendorToken, project.ProjectID, fmt.Sprintf(`{"vendor_id": %d, "total_amount": 10}`, other.VendorID))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.submit(t, env.admin, project.ProjectID, `{"total_amount": 10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.submit(t, env.admin, project.ProjectID, fmt.Sprintf(`{"vendor_id": %d, "total_amount": 10, "currency": "usd"}`, other.VendorID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "USD", decode[models.PerformaGorm](t, w).Currency)

	w = env.submit(t, vendorToken, project.ProjectID, `{"line_items": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.submit(t, vendorToken, project.ProjectID, `{"total_amount": 10, "line_items": [{"description": "x", "amount": "abc"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.submit(t, vendorToken, project.ProjectID, `{"total_amount": 10, "line_items": [{"description": "x", "amount": 12.345}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.submit(t, vendorToken, 424242, `{"total_amount": 10}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPerformaScopingAndReview(t *testing.T) {
	env := newTestEnv(t, false)
	project := env.createProject(t, "Tower A")
	a := env.createVendor(t, "ABC Electricals", "sales@abc.example")
	b := env.createVendor(t, "XYZ Power", "bids@xyz.example")
	tokenA := env.login(t, &models.User{ID: 2, Email: "a@example.com", RoleName: models.RoleVendor, VendorID: a.VendorID})
	tokenB := env.login(t, &models.User{ID: 3, Email: "b@example.com", RoleName: models.RoleVendor, VendorID: b.VendorID})

	w := env.submit(t, tokenA, project.ProjectID, `{"category": "Electrical", "total_amount": 1500}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pa := decode[models.PerformaGorm](t, w)
	w = env.submit(t, tokenB, project.ProjectID, `{"category": "Electrical", "total_amount": 1200}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	listPath := fmt.Sprintf("/api/projects/%d/performas", project.ProjectID)
	w = env.do(t, http.MethodGet, listPath, tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	own := decode[[]models.PerformaGorm](t, w)
	require.Len(t, own, 1)
	assert.Equal(t, pa.ID, own[0].ID)

	w = env.do(t, http.MethodGet, listPath, env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.PerformaGorm](t, w), 2)

	w = env.do(t, http.MethodGet, listPath+"?status=bogus", env.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/performas/%d", pa.ID), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/performas/%d", pa.ID), tokenA, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	statusPath := fmt.Sprintf("/api/performas/%d/status", pa.ID)
	w = env.do(t, http.MethodPut, statusPath, tokenA, gin.H{"status": "APPROVED"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(t, http.MethodPut, statusPath, env.admin, gin.H{"status": "EXPIRED"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, statusPath, env.admin, gin.H{"status": "under_review"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.PerformaUnderReview, decode[models.PerformaGorm](t, w).Status)
	assert.Empty(t, env.notifier.sent)

	w = env.do(t, http.MethodPut, statusPath, env.admin, gin.H{"status": "APPROVED", "remarks": "Lowest compliant"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	approved := decode[models.PerformaGorm](t, w)
	assert.Equal(t, models.PerformaApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "Asha Admin", *approved.ReviewedBy)
	assert.Equal(t, []string{pa.Reference + ":APPROVED:Tower A"}, env.notifier.sent)

	w = env.do(t, http.MethodPut, statusPath, env.admin, gin.H{"status": "REJECTED"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/performas/%d/qr", pa.ID), tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/performas/%d", pa.ID), env.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/performas/%d", pa.ID), env.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Contains(t, env.activity.events(), "Performa/Under Review")
	assert.Contains(t, env.activity.events(), "Performa/Approved")
}

func TestComparisonEndpoints(t *testing.T) {
	env := newTestEnv(t, false)
	project := env.createProject(t, "Tower A")
	a := env.createVendor(t, "vendor a", "")
	b := env.createVendor(t, "vendor b", "")

	w := env.submit(t, env.admin, project.ProjectID, fmt.Sprintf(`{"vendor_id": %d, "category": "Electrical", "total_amount": "1500",
		"line_items": [{"sequence_number": 1, "description": "Wiring", "amount": 1000}, {"sequence_number": 2, "description": "Fixtures", "amount": 500}]}`, a.VendorID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = env.submit(t, env.admin, project.ProjectID, fmt.Sprintf(`{"vendor_id": %d, "category": "Electrical", "total_amount": "1200",
		"line_items": [{"sequence_number": 1, "description": "Wiring", "amount": 800}, {"sequence_number": 3, "description": "Conduit", "amount": 400}]}`, b.VendorID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = env.submit(t, env.admin, project.ProjectID, fmt.Sprintf(`{"vendor_id": %d, "total_amount": "90"}`, b.VendorID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	base := fmt.Sprintf("/api/projects/%d/comparison", project.ProjectID)

	w = env.do(t, http.MethodGet, base+"?category=Electrical", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[map[string]any](t, w)
	assert.Equal(t, "Tower A", resp["project_name"])
	assert.ElementsMatch(t, []any{"Electrical", "General"}, resp["available_categories"])
	assert.NotContains(t, resp, "message")

	table := resp["table"].(map[string]any)
	columns := table["columns"].([]any)
	require.Len(t, columns, 2)
	assert.Equal(t, "vendor b", columns[0].(map[string]any)["vendor_name"])
	assert.Equal(t, float64(1), columns[0].(map[string]any)["rank"])
	assert.Len(t, table["rows"].([]any), 3)

	w = env.do(t, http.MethodGet, base, env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[map[string]any](t, w)
	assert.Len(t, all["table"].(map[string]any)["columns"].([]any), 3)

	w = env.do(t, http.MethodGet, base+"?category=Plumbing", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	empty := decode[map[string]any](t, w)
	assert.Equal(t, "No quotes found for Plumbing", empty["message"])

	w = env.do(t, http.MethodGet, "/api/projects/424242/comparison", env.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, base+"/excel?category=Electrical", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), fmt.Sprintf("comparison_%d_Electrical.xlsx", project.ProjectID))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w = env.do(t, http.MethodGet, base+"/pdf?category=Electrical", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	vendorToken := env.login(t, &models.User{ID: 2, Email: "a@example.com", RoleName: models.RoleVendor, VendorID: a.VendorID})
	w = env.do(t, http.MethodGet, base, vendorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBOQDocuments(t *testing.T) {
	env := newTestEnv(t, true)
	project := env.createProject(t, "Tower A")
	path := fmt.Sprintf("/api/projects/%d/boq", project.ProjectID)

	w := env.upload(t, path, env.admin, "boq-electrical.xlsx", "sheet bytes", map[string]string{"category": "Electrical"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	doc := decode[models.BOQDocumentGorm](t, w)
	assert.Equal(t, "boq-electrical.xlsx", doc.FileName)
	require.NotNil(t, doc.Category)
	assert.Equal(t, "Electrical", *doc.Category)
	assert.Len(t, env.objects.objects, 1)

	w = env.upload(t, path, env.admin, "boq-general.pdf", "pdf bytes", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, path+"?category=General", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	docs := decode[[]models.BOQDocumentGorm](t, w)
	require.Len(t, docs, 1)
	assert.Equal(t, "boq-general.pdf", docs[0].FileName)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/boq/%d/download", doc.ID), env.admin, nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "signed=1")
}

func TestUploadsWithoutObjectStorage(t *testing.T) {
	env := newTestEnv(t, false)
	project := env.createProject(t, "Tower A")

	w := env.upload(t, fmt.Sprintf("/api/projects/%d/boq", project.ProjectID), env.admin, "boq.xlsx", "x", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestActivityLogs(t *testing.T) {
	env := newTestEnv(t, false)
	env.createProject(t, "Tower A")
	env.createVendor(t, "ABC Electricals", "")

	w := env.do(t, http.MethodGet, "/api/logs?limit=1", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode[models.ActivityLogPage](t, w)
	assert.Equal(t, 2, page.TotalRecords)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Vendor", page.Data[0].EventContext)
	assert.Equal(t, "Asha Admin", page.Data[0].UserName)
}
