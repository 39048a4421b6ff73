package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/issue-tracker/errs"
	"github.com/issue-tracker/validation"
)

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

// respondError writes the status mapped for err. Unknown errors become a 500
// without leaking their text; ZLogMiddleware logs them.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	if errors.Is(err, validation.ErrNameMissing) {
		respondInvalid(c, "Invalid request", map[string]string{"form": err.Error()})
		return
	}

	status, known := errs.Status(err)
	message := "Internal server error"
	if known != nil {
		message = known.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}

func respondInvalid(c *gin.Context, message string, fields map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": message,
		"errors":  fields,
	})
}

func respondBindError(c *gin.Context, err error) {
	respondInvalid(c, "Invalid request body", validation.FieldErrors(err))
}

// pathID parses a numeric path parameter. Anything else is answered with 404
// as no such route exists.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Not found",
		})
		return 0, false
	}
	return uint(id), true
}

// localPath reports whether next is a path on this host
func localPath(next string) bool {
	return strings.HasPrefix(next, "/") &&
		!strings.HasPrefix(next, "//") &&
		!strings.ContainsAny(next, "\\\r\n")
}
