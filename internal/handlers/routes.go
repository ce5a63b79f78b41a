package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lancechain/registry_be/internal/middleware"
)

// RegisterRoutes mounts the registry façade. Registration and project
// reads are public; everything else requires an authenticated caller.
func RegisterRoutes(app *fiber.App, profileH *ProfileHandler, projectH *ProjectHandler, jwtSecret string) {
	api := app.Group("/api")

	// public
	api.Post("/auth/register", profileH.Register)
	api.Get("/projects", projectH.List)
	api.Get("/projects/:id", projectH.Get)

	// protected (JWT)
	protected := api.Group("/",
		middleware.JWTFromHeader(jwtSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Put("/profile", profileH.Update)
	protected.Get("/profiles/:address", profileH.GetProfile)
	protected.Get("/profiles/:address/experiences/:index", profileH.GetExperience)
	protected.Get("/profiles/:address/portfolio/:index", profileH.GetPortfolioItem)

	protected.Post("/projects", projectH.Create)
	protected.Patch("/projects/:id", projectH.Update)
	protected.Post("/projects/:id/proposals", projectH.SubmitProposal)
	protected.Get("/projects/:id/proposals/:index", projectH.GetProposal)
}
