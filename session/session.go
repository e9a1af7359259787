package session

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ContextKey = "SessionID"

	flashField    = "flash"
	intendedField = "intended"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
)

// Flash 只會顯示一次的狀態訊息
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type Manager struct {
	store Store
	opts  Options
	log   logrus.FieldLogger
}

func NewManager(store Store, opts Options, log logrus.FieldLogger) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "storefront_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 2 * time.Hour
	}
	return &Manager{store: store, opts: opts, log: log}
}

func (m *Manager) Store() Store {
	return m.store
}

func (m *Manager) CookieName() string {
	return m.opts.CookieName
}

func generateSessionID() string {
	return uuid.New().String()
}

// 從Cookie讀取Session ID，格式不合法則視為沒有
func (m *Manager) readSessionID(c *gin.Context) string {
	cookie, err := c.Request.Cookie(m.opts.CookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}

// 儲存Session ID至Cookie
func (m *Manager) writeSessionID(c *gin.Context, id string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware 確保每個請求都有Session ID，未知或過期的ID會換成新的
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := m.readSessionID(c)
		if id != "" {
			exists, err := m.store.Exists(c, id)
			if err != nil {
				m.log.WithError(err).Error("無法查詢Session")
			}
			if !exists {
				id = ""
			}
		}

		if id == "" {
			id = generateSessionID()
		} else if err := m.store.Touch(c, id); err != nil {
			m.log.WithError(err).Warn("無法延長Session")
		}

		m.writeSessionID(c, id)
		c.Set(ContextKey, id)
		c.Next()
	}
}

// ID 回傳目前請求的Session ID
func ID(c *gin.Context) string {
	return c.GetString(ContextKey)
}

// Flash 設定下一次頁面顯示的訊息
func (m *Manager) Flash(c *gin.Context, kind, message string) error {
	value, err := json.Marshal(Flash{Kind: kind, Message: message})
	if err != nil {
		return err
	}
	return m.store.Set(c, ID(c), flashField, value)
}

// PopFlash 讀取並刪除訊息
func (m *Manager) PopFlash(c *gin.Context) (Flash, bool) {
	var flash Flash
	id := ID(c)
	value, err := m.store.Get(c, id, flashField)
	if err != nil {
		m.log.WithError(err).Error("無法讀取Flash訊息")
		return flash, false
	}
	if value == nil {
		return flash, false
	}
	if err := m.store.Delete(c, id, flashField); err != nil {
		m.log.WithError(err).Warn("無法刪除Flash訊息")
	}
	if err := json.Unmarshal(value, &flash); err != nil {
		return flash, false
	}
	return flash, true
}

// SetIntended 記住登入前想前往的網址
func (m *Manager) SetIntended(c *gin.Context, target string) error {
	return m.store.Set(c, ID(c), intendedField, []byte(target))
}

// PopIntended 取出登入後要導向的網址，沒有則回傳fallback
func (m *Manager) PopIntended(c *gin.Context, fallback string) string {
	id := ID(c)
	value, err := m.store.Get(c, id, intendedField)
	if err != nil || len(value) == 0 {
		return fallback
	}
	_ = m.store.Delete(c, id, intendedField)
	return string(value)
}

// Regenerate 更換Session ID並保留資料
func (m *Manager) Regenerate(c *gin.Context) error {
	oldID := ID(c)
	newID := generateSessionID()
	if err := m.store.Rename(c, oldID, newID); err != nil {
		return err
	}
	m.writeSessionID(c, newID)
	c.Set(ContextKey, newID)
	return nil
}

// Destroy 刪除所有Session資料並給予新的ID
func (m *Manager) Destroy(c *gin.Context) error {
	if err := m.store.Destroy(c, ID(c)); err != nil {
		return err
	}
	newID := generateSessionID()
	m.writeSessionID(c, newID)
	c.Set(ContextKey, newID)
	return nil
}

// BackURL 上一頁的網址，Referer不是本站時回到首頁
func BackURL(c *gin.Context) string {
	referer := c.Request.Referer()
	if referer == "" {
		return "/"
	}
	u, err := url.Parse(referer)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) {
		return "/"
	}
	//開頭為 // 或 /\ 時瀏覽器會視為其他網站
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") || strings.HasPrefix(u.Path, "/\\") {
		return "/"
	}
	back := u.EscapedPath()
	if u.RawQuery != "" {
		back += "?" + u.RawQuery
	}
	return back
}
