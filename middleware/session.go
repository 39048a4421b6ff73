package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const sessionKeyField = "session_key"

// SessionKey returns the caller's cart session key, or "" if none was issued
func SessionKey(c *gin.Context) string {
	key, _ := sessions.Default(c).Get(sessionKeyField).(string)
	return key
}

// EnsureSessionKey returns the caller's session key, issuing one first if needed
func EnsureSessionKey(c *gin.Context) string {
	sess := sessions.Default(c)
	if key, ok := sess.Get(sessionKeyField).(string); ok && key != "" {
		return key
	}

	key := uuid.NewString()
	sess.Set(sessionKeyField, key)
	if err := sess.Save(); err != nil {
		log.Error().Err(err).Msg("failed to save session")
	}
	return key
}
