package middleware

import "github.com/gofiber/fiber/v2"

// Actor records which caregiver is making the change. Authentication is
// handled outside this core; the collaborating client passes the actor
// identity through a header and it is stamped onto every mutation.
func Actor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if actorID := c.Get("X-Actor-ID"); actorID != "" {
			c.Locals("actorID", actorID)
		}
		return c.Next()
	}
}

func GetActorID(c *fiber.Ctx) string {
	if actorID, ok := c.Locals("actorID").(string); ok {
		return actorID
	}
	return ""
}
