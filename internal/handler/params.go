package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/roster-availability-api/internal/models"
	appErrors "github.com/noah-isme/roster-availability-api/pkg/errors"
	"github.com/noah-isme/roster-availability-api/pkg/response"
)

// idParam parses a positive integer path parameter, writing a 400 when it is invalid.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a positive integer", name)))
		return 0, false
	}
	return id, true
}

// dateQuery parses a YYYY-MM-DD query value. A missing value falls back to
// today in loc when fallback is set, and is an error otherwise.
func dateQuery(c *gin.Context, key string, loc *time.Location, fallback bool) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		if fallback {
			return models.DateOf(time.Now().In(loc)), true
		}
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, key+" is required"))
		return time.Time{}, false
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, key+" must be a YYYY-MM-DD date"))
		return time.Time{}, false
	}
	return d, true
}

// shiftTypesQuery splits a comma separated shift_types value. Validation is
// left to the resolver.
func shiftTypesQuery(c *gin.Context) []models.ShiftType {
	var out []models.ShiftType
	for _, raw := range c.QueryArray("shift_types") {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, models.ShiftType(part))
			}
		}
	}
	return out
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message))
		return false
	}
	return true
}
