package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	TagPid      = "pid"
	TagLatency  = "latency"
	TagMethod   = "method"
	TagPath     = "path"
	TagStatus   = "status"
	TagBody     = "body"
	TagResBody  = "resBody"
	TagIP       = "ip"
	RequestID   = "request_id"
	maxBodySize = 4096
)

const headerRequestID = "X-Request-ID"

// FuncTag - значение поля лога для тега
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid       int
	start     time.Time
	end       time.Time
	requestID string
}

func getFuncTagMap(cfg Config, d *data) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			return cut(c.Body())
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			if string(c.Response().Header.ContentType()) != fiber.MIMEApplicationJSON {
				return ""
			}
			return cut(c.Response().Body())
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			return d.requestID
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

// requestID - идентификатор из заголовка запроса или новый uuid
func requestID(c *fiber.Ctx) string {
	id := c.Get(headerRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(headerRequestID, id)
	c.Locals(RequestID, id)
	return id
}

func cut(body []byte) string {
	if len(body) > maxBodySize {
		return string(body[:maxBodySize]) + "..."
	}
	return string(body)
}
