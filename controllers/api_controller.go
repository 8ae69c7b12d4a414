package controllers

import (
	"errors"
	"log"
	"time"

	"todoweb/database"
	"todoweb/internal/util"
	"todoweb/middleware"
	"todoweb/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenExpiryHours = 24

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type taskRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type doneRequest struct {
	Done bool `json:"done"`
}

// APILogin authenticates JSON credentials and returns a signed token. The
// failure response is the same whether the username or the password was
// wrong.
func APILogin(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var creds credentialsRequest
		if err := c.BodyParser(&creds); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
		}

		user, err := database.FindUserByUsername(c.Context(), creds.Username)
		if err != nil && !errors.Is(err, database.ErrUserNotFound) {
			log.Printf("Failed to look up user for login: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
		}
		if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
		}

		token, err := util.CreateAccessToken(user, secret, accessTokenExpiryHours)
		if err != nil {
			log.Printf("Failed to sign token: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
		}

		return c.JSON(fiber.Map{"token": token})
	}
}

// APIListTasks returns every task of the token's user.
func APIListTasks(c *fiber.Ctx) error {
	ownerID := middleware.APIUserID(c)

	tasks, err := database.Tasks(c.Context(), ownerID, c.Query("category"))
	if err != nil {
		log.Printf("Failed to list tasks for user %d: %v", ownerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}
	return c.JSON(tasks)
}

// APICreateTask creates a task from a JSON body.
func APICreateTask(c *fiber.Ctx) error {
	ownerID := middleware.APIUserID(c)

	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}

	dueDate, err := time.Parse(dueDateFormat, req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date. Please use the format YYYY-MM-DD."})
	}

	task := models.Task{
		Title:        req.Title,
		Category:     req.Category,
		CategorySlug: slug.Make(req.Category),
		DueDate:      dueDate,
		Description:  req.Description,
		UserID:       ownerID,
	}

	if err := database.CreateTask(c.Context(), &task); err != nil {
		log.Printf("Failed to create task for user %d: %v", ownerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create task"})
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// APIGetTask returns one owned task. A missing task and another user's
// task both come back 404.
func APIGetTask(c *fiber.Ctx) error {
	ownerID := middleware.APIUserID(c)

	taskID, err := taskIDParam(c)
	if err != nil {
		return taskNotFoundJSON(c)
	}

	task, err := database.GetTask(c.Context(), ownerID, taskID)
	if err != nil {
		return apiTaskError(c, ownerID, err)
	}
	return c.JSON(task)
}

// APIUpdateTask overwrites the editable fields of one owned task.
func APIUpdateTask(c *fiber.Ctx) error {
	ownerID := middleware.APIUserID(c)

	taskID, err := taskIDParam(c)
	if err != nil {
		return taskNotFoundJSON(c)
	}

	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}

	dueDate, err := time.Parse(dueDateFormat, req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date. Please use the format YYYY-MM-DD."})
	}

	fields := database.TaskFields{
		Title:        req.Title,
		Category:     req.Category,
		CategorySlug: slug.Make(req.Category),
		DueDate:      dueDate,
		Description:  req.Description,
	}

	if err := database.UpdateTask(c.Context(), ownerID, taskID, fields); err != nil {
		return apiTaskError(c, ownerID, err)
	}

	task, err := database.GetTask(c.Context(), ownerID, taskID)
	if err != nil {
		return apiTaskError(c, ownerID, err)
	}
	return c.JSON(task)
}

// APISetTaskDone sets the completion flag.
func APISetTaskDone(c *fiber.Ctx) error {
	ownerID := middleware.APIUserID(c)

	taskID, err := taskIDParam(c)
	if err != nil {
		return taskNotFoundJSON(c)
	}

	var req doneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse request body"})
	}

	if err := database.SetTaskDone(c.Context(), ownerID, taskID, req.Done); err != nil {
		return apiTaskError(c, ownerID, err)
	}
	return c.JSON(fiber.Map{"message": "Task updated"})
}

// APIDeleteTask removes one owned task permanently.
func APIDeleteTask(c *fiber.Ctx) error {
	ownerID := middleware.APIUserID(c)

	taskID, err := taskIDParam(c)
	if err != nil {
		return taskNotFoundJSON(c)
	}

	if err := database.DeleteTask(c.Context(), ownerID, taskID); err != nil {
		return apiTaskError(c, ownerID, err)
	}
	return c.JSON(fiber.Map{"message": "Task deleted"})
}

func taskNotFoundJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
}

func apiTaskError(c *fiber.Ctx, ownerID uint, err error) error {
	if errors.Is(err, database.ErrTaskNotFound) {
		return taskNotFoundJSON(c)
	}
	log.Printf("Task operation failed for user %d: %v", ownerID, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
}
