package profile

import (
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/repository/postgres/employee"
	"hrportal/backend/internal/repository/postgres/user"
	"hrportal/backend/internal/service"
)

const (
	// StoredPrefix is prepended to file names kept in employees.profile_image.
	StoredPrefix = "uploads/"
	// MediaPrefix is the public path the uploads directory is served under.
	MediaPrefix = "/media/"
)

type Controller struct {
	employee   Employee
	user       User
	identity   Identity
	uploadsDir string
	now        func() time.Time
}

func NewController(employee Employee, user User, identity Identity, uploadsDir string, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}

	return &Controller{
		employee:   employee,
		user:       user,
		identity:   identity,
		uploadsDir: uploadsDir,
		now:        now,
	}
}

func (uc Controller) Update(c *web.Context) error {
	empID, err := uc.identity.EmpID(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	var request employee.UpdateProfileRequest
	if err := c.BindFunc(&request, "Name", "Email", "Department"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.UpdateProfile(c.Ctx, empID, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data":   response,
		"error":  nil,
	}, http.StatusOK)
}

func (uc Controller) ChangePassword(c *web.Context) error {
	var request user.ChangePasswordRequest
	if err := c.BindFunc(&request, "CurrentPassword", "NewPassword", "ConfirmPassword"); err != nil {
		return c.RespondError(err)
	}

	if err := uc.user.ChangePassword(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data":   "Password changed",
		"error":  nil,
	}, http.StatusOK)
}

// UploadImage accepts the image under the "file" or "profilePic" form key.
func (uc Controller) UploadImage(c *web.Context) error {
	empID, err := uc.identity.EmpID(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	file, err := formImage(c)
	if err != nil {
		return c.RespondError(err)
	}

	name, err := service.SaveProfileImage(file, uc.uploadsDir, empID, uc.now())
	if err != nil {
		return c.RespondError(err)
	}

	if err := uc.employee.SetProfileImage(c.Ctx, empID, StoredPrefix+name); err != nil {
		if removeErr := os.Remove(filepath.Join(uc.uploadsDir, name)); removeErr != nil {
			log.Println("profile image os.Remove() error:", removeErr)
		}
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"status":  true,
		"url":     path.Join(MediaPrefix, name),
		"error":   nil,
	}, http.StatusOK)
}

func formImage(c *web.Context) (*multipart.FileHeader, error) {
	var lastErr error
	for _, key := range []string{"file", "profilePic"} {
		file, err := c.FormFile(key)
		if err == nil {
			return file, nil
		}

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, web.NewRequestError(service.ErrTooLarge, http.StatusRequestEntityTooLarge)
		}
		lastErr = err
	}

	if errors.Is(lastErr, http.ErrMissingFile) {
		return nil, web.NewRequestError(errors.New("No file"), http.StatusBadRequest)
	}
	return nil, web.NewRequestError(lastErr, http.StatusBadRequest)
}
