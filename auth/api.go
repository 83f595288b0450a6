package auth

import (
	"github.com/gofiber/fiber/v2"
)

func AttachCeremonyRoutes(app *fiber.App, orchestrator *Orchestrator) {
	registration := app.Group("/registration")
	registration.Post("/options", registrationOptionsAPI(orchestrator))
	registration.Post("/verify", registrationVerifyAPI(orchestrator))

	authentication := app.Group("/authentication")
	authentication.Post("/options", authenticationOptionsAPI(orchestrator))
	authentication.Post("/verify", authenticationVerifyAPI(orchestrator))
}

func badRequestResponse(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusBadRequest)
}

// ceremonyFailedResponse is the single response for every failed check on a
// ceremony. It deliberately carries no detail: a caller that could tell
// "no such user" from "wrong credential" has a user-enumeration oracle.
func ceremonyFailedResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "ceremony failed",
	})
}

func failureResponse(c *fiber.Ctx, err error) error {
	if IsCeremonyFailure(err) {
		return ceremonyFailedResponse(c)
	}
	return c.SendStatus(fiber.StatusInternalServerError)
}

func registrationOptionsAPI(orchestrator *Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(OptionsRequest)

		if err := c.BodyParser(req); err != nil {
			return badRequestResponse(c)
		}
		if req.Username == "" {
			return badRequestResponse(c)
		}

		creation, err := orchestrator.RegistrationOptions(req.Username)
		if err != nil {
			return failureResponse(c, err)
		}

		return c.JSON(creation)
	}
}

func registrationVerifyAPI(orchestrator *Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(RegistrationVerifyRequest)

		if err := c.BodyParser(req); err != nil {
			return badRequestResponse(c)
		}
		if req.Username == "" || req.AuthenticatorResponse == nil {
			return badRequestResponse(c)
		}

		pcc, err := req.AuthenticatorResponse.Parse()
		if err != nil {
			return ceremonyFailedResponse(c)
		}

		if err := orchestrator.RegistrationVerify(req.Username, pcc); err != nil {
			return failureResponse(c, err)
		}

		return c.SendStatus(fiber.StatusOK)
	}
}

func authenticationOptionsAPI(orchestrator *Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(OptionsRequest)

		if err := c.BodyParser(req); err != nil {
			return badRequestResponse(c)
		}
		if req.Username == "" {
			return badRequestResponse(c)
		}

		assertion, err := orchestrator.AuthenticationOptions(req.Username)
		if err != nil {
			return failureResponse(c, err)
		}

		return c.JSON(assertion)
	}
}

func authenticationVerifyAPI(orchestrator *Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(AuthenticationVerifyRequest)

		if err := c.BodyParser(req); err != nil {
			return badRequestResponse(c)
		}
		if req.Username == "" || req.AuthenticatorResponse == nil {
			return badRequestResponse(c)
		}

		pca, err := req.AuthenticatorResponse.Parse()
		if err != nil {
			return ceremonyFailedResponse(c)
		}

		if err := orchestrator.AuthenticationVerify(req.Username, pca); err != nil {
			return failureResponse(c, err)
		}

		return c.SendStatus(fiber.StatusOK)
	}
}
