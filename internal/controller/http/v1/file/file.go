package file

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	root string
}

func NewController(root string) *Controller {
	return &Controller{root: root}
}

// File serves a stored upload. Directories are never listed.
func (cf Controller) File(c *gin.Context) {
	name := path.Clean("/" + c.Param("filepath"))
	if name == "/" || strings.Contains(name[1:], "/") {
		c.JSON(http.StatusNotFound, map[string]any{
			"error":  "file not found",
			"status": false,
		})
		return
	}

	full := filepath.Join(cf.root, filepath.FromSlash(name))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, map[string]any{
			"error":  "file not found",
			"status": false,
		})
		return
	}

	c.File(full)
}
