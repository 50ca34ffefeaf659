package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/guttosm/count-service/internal/service"
)

// AuditLog records an action that happens outside the tally engine, such as
// a label print, with the request's device, operator and request ID.
// A nil recorder disables auditing.
func AuditLog(recorder service.ActivityRecorder, c *gin.Context, action, sku string, fields map[string]interface{}) {
	if recorder == nil {
		return
	}
	recorder.Record(auditEntry(c, action, sku, fields))
}

// AuditLogError is AuditLog for a failed action.
func AuditLogError(recorder service.ActivityRecorder, c *gin.Context, action, sku string, err error, fields map[string]interface{}) {
	if recorder == nil {
		return
	}
	entry := auditEntry(c, action, sku, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	recorder.Record(entry)
}

func auditEntry(c *gin.Context, action, sku string, fields map[string]interface{}) *model.ActivityEntry {
	entry := &model.ActivityEntry{
		Timestamp:  time.Now().UTC(),
		DeviceID:   GetDeviceID(c),
		OperatorID: GetOperatorID(c),
		Action:     action,
		SKU:        sku,
		RequestID:  GetRequestID(c),
	}
	for k, v := range fields {
		entry.WithField(k, v)
	}
	entry.WithField("ip", c.ClientIP())
	return entry
}
