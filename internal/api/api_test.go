package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/digidesa/desa-cms/internal/common"
	"github.com/digidesa/desa-cms/internal/config"
	"github.com/digidesa/desa-cms/internal/database"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// tinyGIF is a valid 1x1 GIF, enough to pass image sniffing.
var tinyGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3B,
}

type testServer struct {
	echo      *echo.Echo
	assetRoot string
	token     string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, database.SeedDefaults(db))

	assetRoot := t.TempDir()
	cfg := &config.ServiceConfig{
		Port:     5000,
		Database: config.Database{Type: "sqlite", ConnectionString: ":memory:"},
		Assets:   config.Assets{Root: assetRoot, PublicPath: "/backend-assets"},
		Auth:     config.Auth{JWTSecret: "test-secret", TokenExpiryHours: 1},
	}

	e := echo.New()
	e.Validator = &common.GenericEchoValidator{}
	NewAPIService(cfg, db, nil, zap.NewNop()).SetRoutes(e)

	ts := &testServer{echo: e, assetRoot: assetRoot}
	ts.token = ts.loginSeededAdmin(t)
	return ts
}

func (ts *testServer) loginSeededAdmin(t *testing.T) string {
	t.Helper()
	body := ts.doJSON(t, http.MethodPost, "/api/auth/login",
		`{"email":"admin@desa.id","password":"admin123"}`, "", http.StatusOK)
	data := body["data"].(map[string]any)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// doJSON performs a JSON request and decodes the response envelope.
func (ts *testServer) doJSON(t *testing.T, method, path, payload, token string, wantStatus int) map[string]any {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if payload != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	return ts.do(t, req, wantStatus)
}

func (ts *testServer) do(t *testing.T, req *http.Request, wantStatus int) map[string]any {
	t.Helper()
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	require.Equal(t, wantStatus, rec.Code, "unexpected status, body: %s", rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// multipartRequest builds a multipart form request with optional file upload.
func multipartRequest(t *testing.T, method, path string, fields map[string]string, fileField string, fileContent []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, "upload.gif")
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)
	body := ts.doJSON(t, http.MethodGet, "/health", "", "", http.StatusOK)
	assert.Equal(t, true, body["success"])
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	body := ts.doJSON(t, http.MethodPost, "/api/auth/login",
		`{"email":"admin@desa.id","password":"salah"}`, "", http.StatusUnauthorized)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Email atau password salah", body["message"])
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/news/1", nil)
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/news/1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-real-token")
	rec = httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyTokenEndpoint(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+ts.token)
	body := ts.do(t, req, http.StatusOK)
	assert.Equal(t, "Token valid", body["message"])

	missing := ts.doJSON(t, http.MethodGet, "/api/auth/verify", "", "", http.StatusUnauthorized)
	assert.Equal(t, "Token tidak ditemukan", missing["message"])
}

func TestGalleryUploadLifecycle(t *testing.T) {
	ts := newTestServer(t)

	req := multipartRequest(t, http.MethodPost, "/api/galleries",
		map[string]string{"judul": "Panen Raya", "kategori": "kegiatan"}, "gambar", tinyGIF)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+ts.token)
	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("X-Forwarded-Host", "desa.example.id")
	body := ts.do(t, req, http.StatusCreated)

	created := body["data"].(map[string]any)
	url, _ := created["gambar"].(string)
	require.True(t, strings.HasPrefix(url, "https://desa.example.id/backend-assets/gallery/"), "unexpected image URL %q", url)
	filename := url[strings.LastIndex(url, "/")+1:]

	// The file must land on disk under the category directory.
	onDisk := filepath.Join(ts.assetRoot, "gallery", filename)
	_, err := os.Stat(onDisk)
	require.NoError(t, err, "expected uploaded file at %s", onDisk)

	list := ts.doJSON(t, http.MethodGet, "/api/galleries", "", "", http.StatusOK)
	assert.EqualValues(t, 1, list["count"])
	assert.Contains(t, list, "imageBasePath")

	id := int64(created["id"].(float64))
	deleted := ts.doJSON(t, http.MethodDelete, "/api/galleries/1", "", ts.token, http.StatusOK)
	assert.EqualValues(t, id, deleted["deletedId"])

	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Errorf("expected file to be removed after delete, stat err: %v", err)
	}
}

func TestGalleryCreateRequiresImage(t *testing.T) {
	ts := newTestServer(t)

	req := multipartRequest(t, http.MethodPost, "/api/galleries",
		map[string]string{"judul": "Tanpa Foto", "kategori": "umum"}, "", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+ts.token)
	body := ts.do(t, req, http.StatusBadRequest)
	assert.Equal(t, "Judul, kategori, and image file are required", body["message"])
}

func TestUploadRejectsNonImage(t *testing.T) {
	ts := newTestServer(t)

	req := multipartRequest(t, http.MethodPost, "/api/galleries",
		map[string]string{"judul": "Bukan Gambar", "kategori": "umum"}, "gambar", []byte("just text"))
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+ts.token)
	body := ts.do(t, req, http.StatusBadRequest)
	assert.Equal(t, false, body["success"])
}

func TestNewsCreateAndFetchBySlug(t *testing.T) {
	ts := newTestServer(t)

	created := ts.doJSON(t, http.MethodPost, "/api/news",
		`{"judul":"Pembangunan Jalan Desa!","konten":"Isi berita.","status":"published"}`,
		ts.token, http.StatusCreated)
	data := created["data"].(map[string]any)
	assert.Equal(t, "pembangunan-jalan-desa", data["slug"])
	assert.Nil(t, data["gambar"])

	fetched := ts.doJSON(t, http.MethodGet, "/api/news/pembangunan-jalan-desa", "", "", http.StatusOK)
	item := fetched["data"].(map[string]any)
	assert.Equal(t, "Pembangunan Jalan Desa!", item["judul"])

	list := ts.doJSON(t, http.MethodGet, "/api/news", "", "", http.StatusOK)
	assert.EqualValues(t, 1, list["total"])
	assert.EqualValues(t, 1, list["totalPages"])
	assert.EqualValues(t, 10, list["limit"])
}

func TestNewsDraftHiddenFromPublicListing(t *testing.T) {
	ts := newTestServer(t)

	ts.doJSON(t, http.MethodPost, "/api/news",
		`{"judul":"Masih Konsep","konten":"x","status":"draft"}`, ts.token, http.StatusCreated)

	list := ts.doJSON(t, http.MethodGet, "/api/news", "", "", http.StatusOK)
	assert.EqualValues(t, 0, list["total"])

	ts.doJSON(t, http.MethodGet, "/api/news/masih-konsep", "", "", http.StatusNotFound)
}

func TestListingFlagsMissingImageFile(t *testing.T) {
	ts := newTestServer(t)

	req := multipartRequest(t, http.MethodPost, "/api/galleries",
		map[string]string{"judul": "Foto Hilang", "kategori": "umum"}, "gambar", tinyGIF)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+ts.token)
	created := ts.do(t, req, http.StatusCreated)
	url := created["data"].(map[string]any)["gambar"].(string)
	filename := url[strings.LastIndex(url, "/")+1:]

	// Remove the file out-of-band; reads must degrade, not fail.
	require.NoError(t, os.Remove(filepath.Join(ts.assetRoot, "gallery", filename)))

	list := ts.doJSON(t, http.MethodGet, "/api/galleries", "", "", http.StatusOK)
	items := list["data"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Nil(t, item["gambar"])
	assert.Equal(t, "Image file not found on server", item["warning"])
}

func TestSubmissionFlow(t *testing.T) {
	ts := newTestServer(t)

	created := ts.doJSON(t, http.MethodPost, "/api/services",
		`{"nama":"Surat Domisili"}`, ts.token, http.StatusCreated)
	serviceID := int64(created["data"].(map[string]any)["id"].(float64))
	require.EqualValues(t, 1, serviceID)

	// Citizens submit without authentication.
	submitted := ts.doJSON(t, http.MethodPost, "/api/services/1/submissions",
		`{"nama_pemohon":"Siti Aminah","nik":"3204010101010001","alamat":"RT 01","telepon":"0812","keperluan":"Kerja"}`,
		"", http.StatusCreated)
	subID := int64(submitted["data"].(map[string]any)["id"].(float64))

	ts.doJSON(t, http.MethodPost, "/api/services/99/submissions",
		`{"nama_pemohon":"Siti","nik":"1","alamat":"RT 01","telepon":"0812","keperluan":"x"}`,
		"", http.StatusNotFound)

	listed := ts.doJSON(t, http.MethodGet, "/api/submissions", "", ts.token, http.StatusOK)
	assert.Len(t, listed["data"].([]any), 1)

	ts.doJSON(t, http.MethodPut, "/api/submissions/1/status",
		`{"status":"selesai","catatan":"Sudah jadi"}`, ts.token, http.StatusOK)

	after := ts.doJSON(t, http.MethodGet, "/api/submissions?status=selesai", "", ts.token, http.StatusOK)
	items := after["data"].([]any)
	require.Len(t, items, 1)
	assert.EqualValues(t, subID, items[0].(map[string]any)["id"].(float64))
	assert.NotNil(t, items[0].(map[string]any)["tanggal_selesai"])
}

func TestSettingsUpdate(t *testing.T) {
	ts := newTestServer(t)

	initial := ts.doJSON(t, http.MethodGet, "/api/desa", "", "", http.StatusOK)
	require.NotEmpty(t, initial["data"].(map[string]any)["nama_desa"])

	ts.doJSON(t, http.MethodPut, "/api/desa",
		`{"nama_desa":"Desa Sukamaju","telepon":"0812-0000-0000"}`, ts.token, http.StatusOK)

	updated := ts.doJSON(t, http.MethodGet, "/api/desa", "", "", http.StatusOK)
	data := updated["data"].(map[string]any)
	assert.Equal(t, "Desa Sukamaju", data["nama_desa"])
	assert.Equal(t, "0812-0000-0000", data["telepon"])
}

func TestStatisticsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	ts.doJSON(t, http.MethodPost, "/api/news",
		`{"judul":"Satu","konten":"x"}`, ts.token, http.StatusCreated)

	body := ts.doJSON(t, http.MethodGet, "/api/statistics", "", "", http.StatusOK)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1, data["news"])
	assert.EqualValues(t, 0, data["gallery"])
}
