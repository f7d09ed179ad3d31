package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"foodcourt/internal/config"
	applog "foodcourt/internal/log"
)

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "foodcourt",
		BodyLimit: 1 << 20, // 1 MiB
		// owner ids such as emails arrive percent-encoded in paths
		UnescapePath: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				applog.Error(c, "server.error", err, nil)
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	origins := strings.Join(cfg.CORSOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		// browsers refuse credentialed responses with a wildcard origin
		AllowCredentials: origins != "" && origins != "*",
	}))

	Register(app, d)
	return app
}

func Register(app *fiber.App, d *Deps) {
	auth := RequireToken(d.Tokens)

	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("server is running") })

	app.Post("/jwt", d.AuthHandler.Issue)
	app.Post("/logout", d.AuthHandler.Logout)

	app.Get("/purchase", d.OrderHandler.Purchase)
	app.Get("/mypurchase/:uid", auth, d.OrderHandler.Mine)
	app.Delete("/deleteorder/:orderId", d.OrderHandler.Delete)

	app.Get("/myfoods/:uid", auth, d.FoodHandler.Mine)
	app.Get("/foods/search", d.FoodHandler.Search)
	app.Get("/fooddetails/:id", d.FoodHandler.Detail)
	app.Get("/allfoods", d.FoodHandler.All)
	app.Get("/homecard", d.FoodHandler.HomeCard)
	app.Post("/addFood", d.FoodHandler.Add)
	app.Post("/updatefoods/:id", d.FoodHandler.Update)
	app.Post("/deleteaddfood/:id", d.FoodHandler.Delete)

	app.Get("/feedbackdata", d.FeedbackHandler.List)
	app.Post("/feedback", d.FeedbackHandler.Submit)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "route not found"})
	})
}
