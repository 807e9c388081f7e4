package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/repository/postgres/employee"
	"hrportal/backend/internal/repository/postgres/user"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIdentity string

func (f fakeIdentity) EmpID(context.Context) (string, error) { return string(f), nil }

type fakeEmployee struct {
	images map[string]string
	fail   error
}

func (f *fakeEmployee) UpdateProfile(_ context.Context, empID string, req employee.UpdateProfileRequest) (entity.Employee, error) {
	return entity.Employee{EmpID: empID, Name: req.Name, Email: req.Email, Department: req.Department}, nil
}

func (f *fakeEmployee) SetProfileImage(_ context.Context, empID, path string) error {
	if f.fail != nil {
		return f.fail
	}
	f.images[empID] = path
	return nil
}

type fakeUser struct {
	requests []user.ChangePasswordRequest
}

func (f *fakeUser) ChangePassword(_ context.Context, req user.ChangePasswordRequest) error {
	f.requests = append(f.requests, req)
	return nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func upload(t *testing.T, app *web.App, field, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/image", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func newApp(t *testing.T) (*web.App, *fakeEmployee, *fakeUser, string) {
	t.Helper()

	dir := t.TempDir()
	employees := &fakeEmployee{images: map[string]string{}}
	users := &fakeUser{}
	clock := func() time.Time { return time.Date(2026, 3, 2, 10, 15, 0, 0, time.UTC) }
	uc := NewController(employees, users, fakeIdentity("EMP001"), dir, clock)

	app := web.NewApp()
	app.Patch("/api/v1/profile", uc.Update)
	app.Post("/api/v1/profile/password", uc.ChangePassword)
	app.Post("/api/v1/profile/image", uc.UploadImage)
	return app, employees, users, dir
}

func TestUploadImage(t *testing.T) {
	app, employees, _, dir := newApp(t)

	rec := upload(t, app, "profilePic", "me.PNG", pngBytes(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["url"] != "/media/EMP001_20260302101500.png" {
		t.Fatalf("unexpected url %v", body["url"])
	}
	if employees.images["EMP001"] != "uploads/EMP001_20260302101500.png" {
		t.Fatalf("unexpected stored path %q", employees.images["EMP001"])
	}
	if _, err := os.Stat(filepath.Join(dir, "EMP001_20260302101500.png")); err != nil {
		t.Fatalf("image not written: %v", err)
	}
}

func TestUploadImageRejects(t *testing.T) {
	app, employees, _, _ := newApp(t)

	if rec := upload(t, app, "file", "notes.txt", []byte("hello")); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for extension, got %d", rec.Code)
	}
	if rec := upload(t, app, "file", "fake.png", []byte("not an image")); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for content, got %d", rec.Code)
	}
	if rec := upload(t, app, "avatar", "me.png", pngBytes(t)); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing file, got %d", rec.Code)
	}
	if len(employees.images) != 0 {
		t.Fatalf("no profile image should be stored")
	}
}

func TestUploadImageRemovesFileWhenProfileUpdateFails(t *testing.T) {
	app, employees, _, dir := newApp(t)
	employees.fail = web.NewRequestError(errors.New("employee not found"), http.StatusNotFound)

	rec := upload(t, app, "file", "me.png", pngBytes(t))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read uploads dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files left in uploads, found %d", len(entries))
	}
}

func TestChangePasswordRequiresFields(t *testing.T) {
	app, _, users, _ := newApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/password",
		bytes.NewBufferString(`{"current_password":"pass123","new_password":"n3w"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(users.requests) != 0 {
		t.Fatalf("repository must not be called")
	}
}
