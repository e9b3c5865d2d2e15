package utils

import (
	"encoding/json"
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// LoadSessionJSON decodes the JSON value stored under key into v. A missing
// key leaves v untouched.
func LoadSessionJSON(c *gin.Context, key string, v interface{}) error {
	raw, ok := sessions.Default(c).Get(key).(string)
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("session value %q is corrupt: %v", key, err)
	}
	return nil
}

// SaveSessionJSON stores v as JSON under key and saves the session.
func SaveSessionJSON(c *gin.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode session value %q: %v", key, err)
	}
	session := sessions.Default(c)
	session.Set(key, string(raw))
	if err := session.Save(); err != nil {
		return fmt.Errorf("session store save failed: %v", err)
	}
	return nil
}

// ClearSessionKey removes key from the session and saves it.
func ClearSessionKey(c *gin.Context, key string) error {
	session := sessions.Default(c)
	session.Delete(key)
	if err := session.Save(); err != nil {
		return fmt.Errorf("session store save failed: %v", err)
	}
	return nil
}
