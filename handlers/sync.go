package handlers

import (
	"hatchling/app"

	"github.com/gofiber/fiber/v2"
)

// The sync coordinator lives out of process. These handlers are its
// whole surface: drain the queue, report outcomes back, and confirm
// rows synced.

// DequeueAll returns every pending queue entry oldest-first, the order
// the coordinator must replay them in.
func DequeueAll(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := a.Queue.DequeueAll(c.Context())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to read sync queue", err)
		}
		return success(c, fiber.Map{"entries": entries})
	}
}

// AcknowledgeEntry removes a queue entry after the remote side confirmed
// the change.
func AcknowledgeEntry(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Queue.Acknowledge(c.Context(), c.Params("id")); err != nil {
			return serverErrorWithDetails(c, "Failed to acknowledge entry", err)
		}
		return success(c, fiber.Map{"message": "entry acknowledged"})
	}
}

type failureRequest struct {
	Error string `json:"error"`
}

// RecordFailure stores a failed sync attempt against the queue entry.
// It always records locally; retry policy stays with the coordinator.
func RecordFailure(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req failureRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Queue.RecordFailure(c.Context(), c.Params("id"), req.Error); err != nil {
			return serverErrorWithDetails(c, "Failed to record sync failure", err)
		}
		return success(c, fiber.Map{"message": "failure recorded"})
	}
}

type markSyncedRequest struct {
	ServerVersion int64 `json:"server_version"`
}

// MarkSynced confirms a row against the remote system. This is the only
// path by which a row reaches the synced status.
func MarkSynced(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req markSyncedRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		entityType := c.Params("entityType")
		if err := a.Store.MarkSynced(c.Context(), entityType, c.Params("id"), req.ServerVersion); err != nil {
			return badRequest(c, err.Error())
		}
		return success(c, fiber.Map{"message": "marked synced"})
	}
}

// PendingCount backs the "N unsynced changes" indicator in the UI.
func PendingCount(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := a.Queue.PendingCount(c.Context())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to count pending changes", err)
		}
		return success(c, fiber.Map{"pending_count": count})
	}
}

// WipeAll clears every entity table and the queue. Logout/reset only.
func WipeAll(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Store.WipeAll(c.Context()); err != nil {
			return serverErrorWithDetails(c, "Failed to wipe local data", err)
		}
		a.Logger.Warn("local store wiped")
		return success(c, fiber.Map{"message": "local data wiped"})
	}
}
