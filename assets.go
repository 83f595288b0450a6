package main

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed client/index.html
var indexHTML string

//go:embed client/style.css
var styleCSS string

//go:embed client/auth.js
var authJS string

func attachClientRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(indexHTML)
	})
	app.Get("/style.css", func(c *fiber.Ctx) error {
		c.Type("css", "utf-8")
		return c.SendString(styleCSS)
	})
	app.Get("/auth.js", func(c *fiber.Ctx) error {
		c.Type("js", "utf-8")
		return c.SendString(authJS)
	})
}
