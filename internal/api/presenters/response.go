package presenters

import (
	"github.com/gofiber/fiber/v2"
)

type (
	Response struct {
		Status  bool        `json:"status"`
		Message string      `json:"message"`
		Data    interface{} `json:"data,omitempty"`
		Error   string      `json:"error,omitempty"`
	}
)

func SuccessResponse(c *fiber.Ctx, data interface{}, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(status).JSON(res)
}
