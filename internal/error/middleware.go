package middleware

import (
	"errors"

	"github.com/bright0ne/A.M-Yusuf-Official/internal/constants"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/service"
	"github.com/gofiber/fiber/v2"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(Response{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(Response{
			Code:    constants.ErrCodeInternalError,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	errorCode := err.Code

	status := constants.GetHTTPStatus(errorCode)
	if status == fiber.StatusInternalServerError && constants.GetErrorMessage(errorCode) == constants.ErrMsgInternalError {
		errorCode = constants.ErrCodeInternalError
	}

	return c.Status(status).JSON(Response{
		Code:    errorCode,
		Message: constants.GetErrorMessage(errorCode),
	})
}
