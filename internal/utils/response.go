package utils

import "github.com/gofiber/fiber/v2"

// Every endpoint answers with {"ok": true, ...payload} on success or
// {"ok": false, "error": "..."} on failure, matching the intake clients.

// OK sends a 200 response merging the payload into the envelope.
func OK(c *fiber.Ctx, payload fiber.Map) error {
	return OKWithStatus(c, fiber.StatusOK, payload)
}

// OKWithStatus sends a success envelope using the provided HTTP status code.
func OKWithStatus(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"ok": true}
	for key, value := range payload {
		body[key] = value
	}

	return c.Status(status).JSON(body)
}

// Fail sends an error envelope with the given status code.
func Fail(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(fiber.Map{"ok": false, "error": message})
}

// FailWith sends an error envelope with extra payload fields alongside the
// error message.
func FailWith(c *fiber.Ctx, status int, message string, extra fiber.Map) error {
	body := fiber.Map{"ok": false, "error": message}
	for key, value := range extra {
		body[key] = value
	}

	return c.Status(status).JSON(body)
}
