package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"
	"time"

	"adoptnest/internal/config"
	"adoptnest/internal/domain"
	"adoptnest/internal/middleware"
	"adoptnest/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// testApp wires the handlers over in-memory repositories the same way the
// server does over Postgres and the object store.
type testApp struct {
	router     chi.Router
	users      *mockUserRepository
	pets       *mockPetRepository
	categories *mockCategoryRepository
	banners    *mockBannerRepository
	assets     *mockAssetStore
	uploadDir  string
	userSvc    service.UserService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := zap.NewNop()

	app := &testApp{
		users:      newMockUserRepository(),
		categories: newMockCategoryRepository(),
		banners:    newMockBannerRepository(),
		assets:     newMockAssetStore(),
		uploadDir:  t.TempDir(),
	}
	app.pets = newMockPetRepository(app.categories)
	favourites := newMockFavouriteRepository(app.pets)

	app.userSvc = service.NewUserService(app.users, newMockRefreshTokenRepository(), config.JWTConfig{Secret: testSecret})
	petSvc := service.NewPetService(app.pets, app.categories, app.users, app.assets, logger)
	categorySvc := service.NewCategoryService(app.categories, app.assets, logger)
	bannerSvc := service.NewBannerService(app.banners, app.assets, logger)
	favouriteSvc := service.NewFavouriteService(favourites, app.pets)

	guards := Guards{
		Auth:         middleware.AuthMiddleware(testSecret, logger),
		OptionalAuth: middleware.OptionalAuthMiddleware(testSecret, logger),
		Admin:        middleware.RequireAdmin(logger),
	}

	r := chi.NewRouter()
	r.Use(middleware.ErrorHandlingMiddleware(logger))
	NewUserHandler(app.userSvc, favouriteSvc, logger).RegisterRoutes(r, guards)
	NewPetHandler(petSvc, app.userSvc, app.uploadDir, logger).RegisterRoutes(r, guards)
	NewUIHandler(petSvc, categorySvc, bannerSvc, app.userSvc, logger).RegisterRoutes(r, guards)
	NewAdminHandler(bannerSvc, categorySvc, app.userSvc, app.uploadDir, logger).RegisterRoutes(r, guards)
	app.router = r

	return app
}

// addUser stores a user directly and returns it with a signed access token.
func (a *testApp) addUser(role string, withContact bool) (*domain.User, string) {
	u := &domain.User{
		ID:        uuid.New(),
		Name:      "Jane Doe",
		Email:     fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if withContact {
		u.Phone = "+15550001"
		u.WhatsApp = "+15550002"
	}
	a.users.users[u.Email] = u

	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	return u, token
}

func (a *testApp) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) doJSON(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, token)
}

// leftovers counts files still present in the upload directory.
func (a *testApp) leftovers(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(a.uploadDir)
	if err != nil {
		t.Fatalf("failed to read upload dir: %v", err)
	}
	return len(entries)
}

type filePart struct {
	name        string
	contentType string
	data        []byte
}

func jpegPart(name string) filePart {
	return filePart{name: name, contentType: "image/jpeg", data: []byte("\xff\xd8\xff\xe0 fake jpeg " + name)}
}

// multipartRequest builds a multipart body with text fields and file parts
// all sent under fileField.
func multipartRequest(t *testing.T, method, path string, fields map[string]string, fileField string, files ...filePart) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("failed to create part: %v", err)
		}
		part.Write(f.data)
	}
	mw.Close()

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, w.Body.String())
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp middleware.ErrorResponse
	decodeBody(t, w, &resp)
	return resp.Error.Code
}

func petFields() map[string]string {
	return map[string]string{
		"name":        "Rex",
		"age":         "2 years",
		"breed":       "Beagle",
		"gender":      "Male",
		"description": "Friendly and calm",
		"location":    "Lisbon",
	}
}
