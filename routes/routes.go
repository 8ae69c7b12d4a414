package routes

import (
	"todoweb/controllers"
	"todoweb/middleware"
	"todoweb/sessions"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, jwtSecret string) {
	// Persists each request's session once, after the handlers run.
	app.Use(sessions.Middleware())

	app.Get("/", controllers.Index)

	app.Get("/login", controllers.LoginPage)
	app.Post("/login", controllers.Login)
	app.Get("/signup", controllers.SignupPage)
	app.Post("/signup", controllers.Signup)
	app.Get("/logout", controllers.Logout)

	// Protect routes with middleware
	guard := middleware.RequireLogin()
	app.Get("/dashboard", guard, controllers.Dashboard)
	app.Get("/create", guard, controllers.CreatePage)
	app.Post("/create", guard, controllers.CreateTask)
	app.Get("/task/:id", guard, controllers.TaskDetail)
	app.Get("/edit/:id", guard, controllers.EditPage)
	app.Post("/edit/:id", guard, controllers.EditTask)
	app.Post("/complete/:id", guard, controllers.CompleteTask)
	app.Post("/incomplete/:id", guard, controllers.IncompleteTask)
	app.Post("/delete/:id", guard, controllers.DeleteTask)

	// Token-authenticated JSON surface
	api := app.Group("/api")
	api.Post("/login", controllers.APILogin(jwtSecret))

	tasks := api.Group("/tasks", middleware.JwtAuthMiddleware(jwtSecret))
	tasks.Get("/", controllers.APIListTasks)
	tasks.Post("/", controllers.APICreateTask)
	tasks.Get("/:id", controllers.APIGetTask)
	tasks.Put("/:id", controllers.APIUpdateTask)
	tasks.Post("/:id/done", controllers.APISetTaskDone)
	tasks.Delete("/:id", controllers.APIDeleteTask)
}
