package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields calls FuncTag functions on matching keys
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) == 0 {
		cfg = ConfigDefault
	} else {
		cfg = config[0]
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg, nil)
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = true
	}
	return func(c *fiber.Ctx) error {
		if skip[c.Path()] {
			return c.Next()
		}
		d := &data{
			pid:       pid,
			start:     time.Now(),
			requestID: requestID(c),
		}
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}

		fields := getLogrusFields(ftm, c, d)
		if err != nil {
			fields["error"] = err.Error()
		}
		message := getMessage(c)
		switch cfg.Logger {
		case nil:
			log.WithFields(fields).Info(message)
		default:
			entity := cfg.Logger.WithFields(fields)
			if c.Response().StatusCode() >= fiber.StatusInternalServerError || err != nil {
				entity.Error(message)
			} else if c.Response().StatusCode() >= fiber.StatusMultipleChoices {
				entity.Warn(message)
			} else {
				entity.Info(message)
			}
		}

		return err
	}
}

// GetRequestID - идентификатор текущего запроса для логов обработчиков
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestID).(string)
	return id
}

func getMessage(c *fiber.Ctx) string {
	return "запрос api"
}
