package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"

	// flashDirtyKey marks a flash session that TakeFlashValue changed but
	// did not save.
	flashDirtyKey = "_flash_dirty"
)

// FlashData holds the one-shot messages shown on the next rendered page.
type FlashData struct {
	Success []string
	Error   []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return
	}
	sess.AddFlash(message, key)
	_ = sess.Save(c.Request(), c.Response())
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetFlashErrorWithValue sets an error flash and stores value under key for
// the next request, writing the flash cookie once.
func SetFlashErrorWithValue(c echo.Context, message, key, value string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return
	}
	sess.AddFlash(message, flashKeyError)
	sess.AddFlash(value, key)
	_ = sess.Save(c.Request(), c.Response())
}

// TakeFlashValue pops the value stored under key. The removal is persisted
// by the GetFlashData call that renders the page.
func TakeFlashValue(c echo.Context, key string) string {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return ""
	}
	values := sess.Flashes(key)
	if len(values) == 0 {
		return ""
	}
	c.Set(flashDirtyKey, true)
	s, _ := values[0].(string)
	return s
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return data
	}

	// Flashes() reads and clears in one go.
	data.Success = toStrings(sess.Flashes(flashKeySuccess))
	data.Error = toStrings(sess.Flashes(flashKeyError))

	// Persist the clearing.
	if dirty, _ := c.Get(flashDirtyKey).(bool); dirty || !data.Empty() {
		c.Set(flashDirtyKey, false)
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

func toStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
