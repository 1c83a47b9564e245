package pkg

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	appError "github.com/safatanc/gsalt-deals/internal/app/errors"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/sirupsen/logrus"
)

func SuccessResponse[T any](c *fiber.Ctx, data T) error {
	return c.JSON(models.WebResponse[T]{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, err error) error {
	var appErr *appError.AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode == fiber.StatusTooManyRequests {
			retryAfter := appErr.Reset - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
		}
		return c.Status(appErr.StatusCode).JSON(models.WebResponse[any]{
			Success: false,
			Message: appErr.Message,
		})
	}

	logrus.WithError(err).WithField("path", c.Path()).Error("unhandled error")

	return c.Status(fiber.StatusInternalServerError).JSON(models.WebResponse[any]{
		Success: false,
		Message: "Internal Server Error",
	})
}

// IssueResponse writes an issuance outcome. A denial is a 409 carrying the reason code.
func IssueResponse(c *fiber.Ctx, result *models.IssueResult) error {
	if result.Status == models.IssueStatusIssued {
		return c.Status(fiber.StatusCreated).JSON(models.WebResponse[*models.IssueResult]{
			Success: true,
			Data:    result,
		})
	}
	return c.Status(fiber.StatusConflict).JSON(models.WebResponse[*models.IssueResult]{
		Success: false,
		Message: "Redemption code not issued",
		Code:    string(result.Reason),
		Data:    result,
	})
}

// VerifyResponse writes a verification outcome: 200 verified, 409 rejected, 403 not authorized.
func VerifyResponse(c *fiber.Ctx, result *models.VerifyResult) error {
	switch result.Status {
	case models.VerifyStatusVerified:
		return c.JSON(models.WebResponse[*models.VerifyResult]{
			Success: true,
			Data:    result,
		})
	case models.VerifyStatusNotAuthorized:
		return c.Status(fiber.StatusForbidden).JSON(models.WebResponse[*models.VerifyResult]{
			Success: false,
			Message: "Not authorized to verify redemptions for this offer",
			Code:    string(result.Reason),
			Data:    result,
		})
	default:
		return c.Status(fiber.StatusConflict).JSON(models.WebResponse[*models.VerifyResult]{
			Success: false,
			Message: "Redemption rejected",
			Code:    string(result.Reason),
			Data:    result,
		})
	}
}
