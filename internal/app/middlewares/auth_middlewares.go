package middlewares

import (
	stdErrors "errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/gsalt-deals/internal/app/errors"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/safatanc/gsalt-deals/internal/app/pkg"
	"github.com/safatanc/gsalt-deals/internal/app/services"
)

const LocalActor = "actor"

type AuthMiddleware struct {
	connectService *services.ConnectService
}

func NewAuthMiddleware(connectService *services.ConnectService) *AuthMiddleware {
	return &AuthMiddleware{connectService: connectService}
}

func (m *AuthMiddleware) AuthConnect(c *fiber.Ctx) error {
	token := c.Get("Authorization")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(models.WebResponse[any]{
			Success: false,
			Message: "Unauthorized",
		})
	}

	token = strings.Replace(token, "Bearer ", "", 1)

	connectUser, err := m.connectService.GetCurrentUser(c.UserContext(), token)
	if err != nil {
		// An identity service outage is not a credentials problem.
		var appErr *errors.AppError
		if stdErrors.As(err, &appErr) && appErr.StatusCode >= fiber.StatusInternalServerError {
			return pkg.ErrorResponse(c, appErr)
		}
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError(err.Error()))
	}

	c.Locals(LocalActor, connectUser.Actor())

	return c.Next()
}

// CurrentActor returns the actor resolved by AuthConnect.
func CurrentActor(c *fiber.Ctx) (models.Actor, error) {
	actor, ok := c.Locals(LocalActor).(models.Actor)
	if !ok {
		return models.Actor{}, errors.NewUnauthorizedError("User is not authenticated")
	}
	return actor, nil
}
