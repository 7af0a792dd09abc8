package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"

	"github.com/thrilogia-ux/havaia-sub001/config"
	"github.com/thrilogia-ux/havaia-sub001/routes"
	"github.com/thrilogia-ux/havaia-sub001/storage"
	"github.com/thrilogia-ux/havaia-sub001/utils"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config failed: %v", err)
	}

	storage.Initialize(cfg.DataDir)

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the dashboard and app shells
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	registerRoutes(app)

	addr := "0.0.0.0:" + cfg.Port
	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func registerRoutes(app *iris.Application) {
	auth := app.Party("/auth")
	{
		auth.Post("/register", routes.Register)
		auth.Post("/login", routes.Login)
	}

	// public reads
	app.Get("/experiencias", routes.ListExperiencias)
	app.Get("/premium-experiences", routes.ListPremiumExperiences)
	app.Get("/grupos", routes.ListGrupos)
	app.Get("/posts", routes.ListPosts)

	grupos := app.Party("/grupos")
	{
		grupos.Get("/{id}/messages", routes.ListGroupMessages)
		grupos.Post("/{id}/messages", routes.SendGroupMessage)
	}

	// premium booking surface; identity travels in the body/query
	app.Post("/reservations", routes.CreateReservation)
	app.Delete("/reservations", routes.CancelReservation)

	admin := app.Party("/admin")
	{
		admin.Get("/stats", utils.AdminOnlyMiddleware, routes.AdminStats)

		users := admin.Party("/users", utils.AdminOnlyMiddleware)
		{
			users.Get("/", routes.AdminListUsers)
			users.Get("/{id}", routes.AdminGetUser)
			users.Post("/", routes.AdminCreateUser)
			users.Put("/{id}", routes.AdminUpdateUser)
			users.Delete("/{id}", routes.AdminDeleteUser)
		}

		experiences := admin.Party("/experiences", utils.AdminOrHostMiddleware)
		{
			experiences.Get("/", routes.AdminListExperiences)
			experiences.Get("/{id}", routes.AdminGetExperience)
			experiences.Post("/", routes.AdminCreateExperience)
			experiences.Put("/{id}", routes.AdminUpdateExperience)
			experiences.Delete("/{id}", routes.AdminDeleteExperience)
		}

		premium := admin.Party("/premium-experiences", utils.AdminOrHostMiddleware)
		{
			premium.Get("/", routes.AdminListPremiumExperiences)
			premium.Get("/{id}", routes.AdminGetPremiumExperience)
			premium.Post("/", routes.AdminCreatePremiumExperience)
			premium.Put("/{id}", routes.AdminUpdatePremiumExperience)
			premium.Delete("/{id}", routes.AdminDeletePremiumExperience)
		}

		groups := admin.Party("/groups", utils.AdminOnlyMiddleware)
		{
			groups.Get("/", routes.AdminListGroups)
			groups.Post("/", routes.AdminCreateGroup)
			groups.Put("/{id}", routes.AdminUpdateGroup)
			groups.Delete("/{id}", routes.AdminDeleteGroup)
		}

		posts := admin.Party("/posts", utils.AdminOnlyMiddleware)
		{
			posts.Get("/", routes.AdminListPosts)
			posts.Post("/", routes.AdminCreatePost)
			posts.Put("/{id}", routes.AdminUpdatePost)
			posts.Delete("/{id}", routes.AdminDeletePost)
		}

		bookings := admin.Party("/reservations", utils.AdminOrHostMiddleware)
		{
			bookings.Get("/", routes.AdminListBookings)
			bookings.Get("/{id}", routes.AdminGetBooking)
			bookings.Post("/", routes.AdminCreateBooking)
			bookings.Put("/{id}", routes.AdminUpdateBooking)
			bookings.Delete("/{id}", routes.AdminDeleteBooking)
		}
	}
}
