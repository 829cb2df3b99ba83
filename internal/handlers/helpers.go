package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// parseOwnerID reads the authenticated trainer's id out of the JWT locals.
// Every data access below the handlers takes this id explicitly; there is no
// ambient tenant state.
func parseOwnerID(c *fiber.Ctx) (int64, error) {
	ownerIDValue := c.Locals("user_id")
	ownerIDStr, ok := ownerIDValue.(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(ownerIDStr, 10, 64)
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
