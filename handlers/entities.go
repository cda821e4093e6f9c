package handlers

import (
	"hatchling/app"
	"hatchling/database"
	"hatchling/middleware"
	"hatchling/models"

	"github.com/gofiber/fiber/v2"
)

// One generic handler set serves all thirteen entity collections; only
// the repository and the patch type differ per registration.

// RegisterEntityRoutes mounts the CRUD surface for one entity kind.
func RegisterEntityRoutes[T models.Entity, P models.Patch[T]](api fiber.Router, a *app.App, path string, repo *database.Repository[T]) {
	api.Post("/"+path, CreateEntity(a, repo))
	api.Get("/"+path, ListEntities(a, repo))
	api.Get("/"+path+"/pending", ListPendingEntities(a, repo))
	api.Get("/"+path+"/:id", GetEntity(a, repo))
	api.Patch("/"+path+"/:id", UpdateEntity[T, P](a, repo))
	api.Delete("/"+path+"/:id", DeleteEntity(a, repo))
}

// CreateEntity inserts a new record. The body carries domain fields plus
// parent_id; ids, timestamps and sync metadata are assigned by the
// repository.
func CreateEntity[T models.Entity](a *app.App, repo *database.Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		e := repo.New()
		if err := c.BodyParser(e); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if actorID := middleware.GetActorID(c); actorID != "" {
			e.Meta().ActorID = actorID
		}

		if err := a.Validator.Validate(e); err != nil {
			return badRequest(c, err.Error())
		}

		entity, err := repo.Create(c.Context(), e)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create "+repo.EntityType(), err)
		}

		return created(c, fiber.Map{repo.EntityType(): entity})
	}
}

// GetEntity returns one record, 404 if absent or tombstoned.
func GetEntity[T models.Entity](a *app.App, repo *database.Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entity, err := repo.Get(c.Context(), c.Params("id"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch "+repo.EntityType(), err)
		}

		var zero T
		if any(entity) == any(zero) {
			return notFound(c, repo.EntityType()+" not found")
		}

		return success(c, fiber.Map{repo.EntityType(): entity})
	}
}

// ListEntities returns the most recent records for a parent,
// newest first.
func ListEntities[T models.Entity](a *app.App, repo *database.Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parentID := c.Query("parent_id")
		if parentID == "" {
			return badRequest(c, "parent_id is required")
		}

		limit := c.QueryInt("limit", 50)
		if limit < 1 || limit > 200 {
			limit = 50
		}

		entities, err := repo.List(c.Context(), parentID, limit)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to list "+repo.EntityType()+"s", err)
		}

		return success(c, fiber.Map{
			"items": entities,
			"limit": limit,
		})
	}
}

// ListPendingEntities is the materialized fallback view of unsynced
// rows, used for startup catch-up alongside the queue.
func ListPendingEntities[T models.Entity](a *app.App, repo *database.Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entities, err := repo.ListPending(c.Context())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to list pending "+repo.EntityType()+"s", err)
		}
		return success(c, fiber.Map{"items": entities})
	}
}

// UpdateEntity merges a typed partial payload into an existing record.
func UpdateEntity[T models.Entity, P models.Patch[T]](a *app.App, repo *database.Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch P
		if err := c.BodyParser(&patch); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(patch); err != nil {
			return badRequest(c, err.Error())
		}

		entity, err := repo.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update "+repo.EntityType(), err)
		}

		var zero T
		if any(entity) == any(zero) {
			return notFound(c, repo.EntityType()+" not found")
		}

		return success(c, fiber.Map{repo.EntityType(): entity})
	}
}

// DeleteEntity tombstones a record; the physical row stays until an
// explicit wipe.
func DeleteEntity[T models.Entity](a *app.App, repo *database.Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := repo.Delete(c.Context(), c.Params("id"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to delete "+repo.EntityType(), err)
		}
		if !ok {
			return notFound(c, repo.EntityType()+" not found")
		}

		return success(c, fiber.Map{
			"message": repo.EntityType() + " deleted successfully",
		})
	}
}
