package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/issue-tracker/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ZLogMiddleware logs every request and turns errors attached with c.Error
// into a JSON error response when the handler wrote nothing
func ZLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		if len(c.Errors) != 0 {
			err := c.Errors.Last().Err
			status, known := errs.Status(err)

			level := zerolog.WarnLevel
			if known == nil {
				level = zerolog.ErrorLevel
			}
			log.WithLevel(level).Err(err).Str("path", c.Request.URL.Path).Msg("request failed")

			if !c.Writer.Written() {
				message := "internal server error"
				if known != nil {
					message = known.Error()
				}
				c.AbortWithStatusJSON(status, gin.H{
					"status":  "error",
					"message": message,
				})
			}
		}

		log.Debug().
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(startTime)).
			Str("ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("")
	}
}
