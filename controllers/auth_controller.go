package controllers

import (
	"errors"
	"log"

	"todoweb/database"
	"todoweb/models"
	"todoweb/sessions"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Index renders the landing page.
func Index(c *fiber.Ctx) error {
	return render(c, "index", nil)
}

func LoginPage(c *fiber.Ctx) error {
	return render(c, "login", nil)
}

// Login checks the submitted credentials and starts a session. An unknown
// username and a wrong password produce the identical notice, so the form
// never reveals which one it was.
func Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := database.FindUserByUsername(c.Context(), username)
	if err != nil && !errors.Is(err, database.ErrUserNotFound) {
		log.Printf("Failed to look up user for login: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		sessions.Flash(c, "error", "Invalid username or password")
		return render(c, "login", fiber.Map{"Username": username})
	}

	if err := sessions.Login(c, user); err != nil {
		log.Printf("Failed to establish session: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	sessions.Flash(c, "info", "Logged in successfully")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func SignupPage(c *fiber.Ctx) error {
	return render(c, "signup", nil)
}

// Signup creates a new account. The plaintext password is hashed
// immediately and never stored or logged.
func Signup(c *fiber.Ctx) error {
	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := database.CreateUser(c.Context(), &user); err != nil {
		if errors.Is(err, database.ErrDuplicateIdentity) {
			sessions.Flash(c, "error", "Username or email already exists. Please choose another.")
			return c.Redirect("/signup", fiber.StatusSeeOther)
		}
		log.Printf("Failed to create user: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	sessions.Flash(c, "success", "Account created successfully! Please log in.")
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// Logout drops the session unconditionally, logged in or not.
func Logout(c *fiber.Ctx) error {
	if err := sessions.Logout(c); err != nil {
		log.Printf("Failed to clear session: %v", err)
	}
	sessions.Flash(c, "info", "You have been logged out")
	return c.Redirect("/", fiber.StatusSeeOther)
}
