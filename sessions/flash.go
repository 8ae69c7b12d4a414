package sessions

import (
	"encoding/gob"
	"log"

	"github.com/gofiber/fiber/v2"
)

const noticesKey = "notices"

// Notice is a one-shot message shown on the next rendered page only.
// Category is one of info, success, warning, error.
type Notice struct {
	Category string
	Message  string
}

func init() {
	// Session values cross the storage boundary gob-encoded.
	gob.Register(Notice{})
	gob.Register([]Notice{})
}

// Flash queues a notice for the next rendered page.
func Flash(c *fiber.Ctx, category, message string) {
	rs, err := get(c)
	if err != nil {
		log.Printf("flash: session unavailable: %v", err)
		return
	}
	notices, _ := rs.sess.Get(noticesKey).([]Notice)
	notices = append(notices, Notice{Category: category, Message: message})
	rs.sess.Set(noticesKey, notices)
	rs.dirty = true
}

// PopNotices returns all queued notices and clears them.
func PopNotices(c *fiber.Ctx) []Notice {
	rs, err := get(c)
	if err != nil {
		return nil
	}
	notices, _ := rs.sess.Get(noticesKey).([]Notice)
	if len(notices) == 0 {
		return nil
	}
	rs.sess.Delete(noticesKey)
	rs.dirty = true
	return notices
}
