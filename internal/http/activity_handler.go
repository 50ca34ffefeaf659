package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/domain/model"
)

// ActivityResponse is a page of the device's audit trail.
type ActivityResponse struct {
	Entries []*model.ActivityEntry `json:"entries"`
	Total   int64                  `json:"total"`
}

// GetActivity lists the audit trail of the requesting device, newest first.
// Optional query parameters: action, limit, skip.
func (h *Handler) GetActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	skip, _ := strconv.Atoi(c.Query("skip"))
	if skip < 0 {
		skip = 0
	}
	opts := model.ActivityQueryOptions{
		DeviceID: deviceID(c),
		Action:   c.Query("action"),
		Limit:    limit,
		Skip:     skip,
	}

	ctx := c.Request.Context()
	entries, err := h.activity.Query(ctx, opts)
	if err != nil {
		writeError(c, err)
		return
	}
	total, err := h.activity.Count(ctx, opts)
	if err != nil {
		writeError(c, err)
		return
	}
	if entries == nil {
		entries = []*model.ActivityEntry{}
	}
	NewResponseBuilder(c).SuccessOK(ActivityResponse{Entries: entries, Total: total})
}
