// Package sessions wraps the Fiber session middleware with the small typed
// surface the rest of the application uses: who is logged in, the one-shot
// first-login flag, and flash notices.
//
// The underlying store resolves a session from the request cookie only, so
// every helper in a request must work on the same *session.Session
// instance: a second store.Get after a Save would spawn a separate session
// and its cookie would orphan the first one. get caches the instance in
// Locals and Middleware persists it once, after the handlers run.
package sessions

import (
	"errors"
	"log"
	"time"

	"todoweb/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	userIDKey     = "user_id"
	usernameKey   = "username"
	firstLoginKey = "first_login"

	sessionLocalsKey = "todoweb-session"
)

var store *session.Store

// Init sets up the session store. A nil storage keeps sessions in process
// memory; pass a Redis-backed storage to survive restarts.
func Init(storage fiber.Storage) {
	store = session.New(session.Config{
		Storage:        storage,
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
	})
}

// requestSession is the per-request view of the session. dirty marks that
// something changed and the session needs one Save before the response.
type requestSession struct {
	sess  *session.Session
	dirty bool
}

func get(c *fiber.Ctx) (*requestSession, error) {
	if store == nil {
		return nil, errors.New("sessions: store not initialized")
	}
	if rs, ok := c.Locals(sessionLocalsKey).(*requestSession); ok {
		return rs, nil
	}
	sess, err := store.Get(c)
	if err != nil {
		return nil, err
	}
	rs := &requestSession{sess: sess}
	c.Locals(sessionLocalsKey, rs)
	return rs, nil
}

// Middleware saves the request's session after the handlers run. Save
// releases the session instance, so it must happen exactly once, here.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if rs, ok := c.Locals(sessionLocalsKey).(*requestSession); ok && rs.dirty {
			if saveErr := rs.sess.Save(); saveErr != nil {
				log.Printf("sessions: save failed: %v", saveErr)
			}
		}
		return err
	}
}

// CurrentUser is the authenticated identity carried by a session.
type CurrentUser struct {
	ID       uint
	Username string
}

// User returns the logged-in identity, or false when the session carries
// none.
func User(c *fiber.Ctx) (CurrentUser, bool) {
	rs, err := get(c)
	if err != nil {
		return CurrentUser{}, false
	}
	id, ok := rs.sess.Get(userIDKey).(uint)
	if !ok {
		return CurrentUser{}, false
	}
	username, _ := rs.sess.Get(usernameKey).(string)
	return CurrentUser{ID: id, Username: username}, true
}

// Login starts a fresh session for the user. The session id is regenerated
// so a pre-login cookie cannot be fixed to the new identity.
func Login(c *fiber.Ctx, user *models.User) error {
	rs, err := get(c)
	if err != nil {
		return err
	}
	if err := rs.sess.Regenerate(); err != nil {
		return err
	}
	rs.sess.Set(userIDKey, user.ID)
	rs.sess.Set(usernameKey, user.Username)
	rs.sess.Set(firstLoginKey, true)
	rs.dirty = true
	return nil
}

// Logout drops the whole session, logged in or not.
func Logout(c *fiber.Ctx) error {
	rs, err := get(c)
	if err != nil {
		return err
	}
	// Destroy clears the stored data and expires the cookie itself; a
	// later notice on the same request re-saves under the same id.
	rs.dirty = false
	return rs.sess.Destroy()
}

// PopFirstLogin reports whether this is the first page view since login and
// clears the flag, so the welcome notice shows exactly once.
func PopFirstLogin(c *fiber.Ctx) bool {
	rs, err := get(c)
	if err != nil {
		return false
	}
	first, _ := rs.sess.Get(firstLoginKey).(bool)
	if !first {
		return false
	}
	rs.sess.Set(firstLoginKey, false)
	rs.dirty = true
	return true
}
