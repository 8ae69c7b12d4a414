package controllers

import (
	"errors"
	"log"
	"time"

	"todoweb/database"
	"todoweb/middleware"
	"todoweb/models"
	"todoweb/sessions"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
)

// dueDateFormat is the only accepted textual date format.
const dueDateFormat = "2006-01-02"

const taskNotFoundNotice = "Task not found or you do not have permission to access it"

// categoryLink is one entry in the dashboard's category filter.
type categoryLink struct {
	Name string
	Slug string
}

// Dashboard lists the current user's tasks, optionally narrowed by the
// category query parameter.
func Dashboard(c *fiber.Ctx) error {
	user := middleware.PageUser(c)

	if sessions.PopFirstLogin(c) {
		sessions.Flash(c, "info", "Welcome back, "+user.Username+"!")
	}

	activeCategory := c.Query("category")
	tasks, err := database.Tasks(c.Context(), user.ID, activeCategory)
	if err != nil {
		log.Printf("Failed to list tasks for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	// The filter links always cover every category the user has, not just
	// the ones visible under the current filter.
	categories := tasks
	if activeCategory != "" {
		categories, err = database.Tasks(c.Context(), user.ID, "")
		if err != nil {
			log.Printf("Failed to list tasks for user %d: %v", user.ID, err)
			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}
	}

	return render(c, "dashboard", fiber.Map{
		"Username":       user.Username,
		"Tasks":          tasks,
		"Categories":     categoryLinks(categories),
		"ActiveCategory": activeCategory,
	})
}

func categoryLinks(tasks []models.Task) []categoryLink {
	seen := make(map[string]bool)
	var links []categoryLink
	for _, t := range tasks {
		if t.Category == "" || seen[t.CategorySlug] {
			continue
		}
		seen[t.CategorySlug] = true
		links = append(links, categoryLink{Name: t.Category, Slug: t.CategorySlug})
	}
	return links
}

func CreatePage(c *fiber.Ctx) error {
	user := middleware.PageUser(c)
	return render(c, "create", fiber.Map{"Username": user.Username})
}

// CreateTask validates the form and saves a new task. A malformed date is a
// validation error, not a crash: the form re-renders with the submitted
// values intact.
func CreateTask(c *fiber.Ctx) error {
	user := middleware.PageUser(c)

	title := c.FormValue("title")
	category := c.FormValue("category")
	dateStr := c.FormValue("date")
	description := c.FormValue("description")

	dueDate, err := time.Parse(dueDateFormat, dateStr)
	if err != nil {
		sessions.Flash(c, "error", "Invalid date. Please use the format YYYY-MM-DD.")
		return render(c, "create", fiber.Map{
			"Username":    user.Username,
			"Title":       title,
			"Category":    category,
			"Date":        dateStr,
			"Description": description,
		})
	}

	task := models.Task{
		Title:        title,
		Category:     category,
		CategorySlug: slug.Make(category),
		DueDate:      dueDate,
		Description:  description,
		UserID:       user.ID,
	}

	if err := database.CreateTask(c.Context(), &task); err != nil {
		log.Printf("Failed to create task for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	sessions.Flash(c, "success", "Task created successfully!")
	return render(c, "create", fiber.Map{"Username": user.Username})
}

// TaskDetail shows a single task. A missing task and another user's task
// are indistinguishable.
func TaskDetail(c *fiber.Ctx) error {
	user := middleware.PageUser(c)

	task, ok := ownedTask(c, user.ID)
	if !ok {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	return render(c, "task", fiber.Map{
		"Username": user.Username,
		"Task":     task,
	})
}

func EditPage(c *fiber.Ctx) error {
	user := middleware.PageUser(c)

	task, ok := ownedTask(c, user.ID)
	if !ok {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	return render(c, "edit", fiber.Map{
		"Username":    user.Username,
		"Task":        task,
		"Title":       task.Title,
		"Category":    task.Category,
		"Date":        task.DueDate.Format(dueDateFormat),
		"Description": task.Description,
	})
}

// EditTask overwrites the editable fields of an owned task.
func EditTask(c *fiber.Ctx) error {
	user := middleware.PageUser(c)

	task, ok := ownedTask(c, user.ID)
	if !ok {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	title := c.FormValue("title")
	category := c.FormValue("category")
	dateStr := c.FormValue("date")
	description := c.FormValue("description")

	dueDate, err := time.Parse(dueDateFormat, dateStr)
	if err != nil {
		sessions.Flash(c, "error", "Invalid date. Please use the format YYYY-MM-DD.")
		return render(c, "edit", fiber.Map{
			"Username":    user.Username,
			"Task":        task,
			"Title":       title,
			"Category":    category,
			"Date":        dateStr,
			"Description": description,
		})
	}

	fields := database.TaskFields{
		Title:        title,
		Category:     category,
		CategorySlug: slug.Make(category),
		DueDate:      dueDate,
		Description:  description,
	}

	if err := database.UpdateTask(c.Context(), user.ID, task.ID, fields); err != nil {
		return taskOpFailed(c, user.ID, err)
	}

	sessions.Flash(c, "success", "Task updated successfully!")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// CompleteTask marks a task done. Completing an already-done task is fine.
func CompleteTask(c *fiber.Ctx) error {
	return setDone(c, true, "Task marked as completed!")
}

// IncompleteTask clears the done flag again.
func IncompleteTask(c *fiber.Ctx) error {
	return setDone(c, false, "Task marked as incomplete!")
}

func setDone(c *fiber.Ctx, done bool, notice string) error {
	user := middleware.PageUser(c)

	taskID, err := taskIDParam(c)
	if err != nil {
		sessions.Flash(c, "error", taskNotFoundNotice)
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	if err := database.SetTaskDone(c.Context(), user.ID, taskID, done); err != nil {
		return taskOpFailed(c, user.ID, err)
	}

	sessions.Flash(c, "success", notice)
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// DeleteTask removes a task permanently.
func DeleteTask(c *fiber.Ctx) error {
	user := middleware.PageUser(c)

	taskID, err := taskIDParam(c)
	if err != nil {
		sessions.Flash(c, "error", taskNotFoundNotice)
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	if err := database.DeleteTask(c.Context(), user.ID, taskID); err != nil {
		return taskOpFailed(c, user.ID, err)
	}

	sessions.Flash(c, "success", "Task deleted successfully!")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// ownedTask resolves the :id route parameter to a task the user owns. On
// any failure it queues the generic notice and reports false; callers
// redirect to the dashboard.
func ownedTask(c *fiber.Ctx, ownerID uint) (*models.Task, bool) {
	taskID, err := taskIDParam(c)
	if err != nil {
		sessions.Flash(c, "error", taskNotFoundNotice)
		return nil, false
	}

	task, err := database.GetTask(c.Context(), ownerID, taskID)
	if err != nil {
		if !errors.Is(err, database.ErrTaskNotFound) {
			log.Printf("Failed to load task %d for user %d: %v", taskID, ownerID, err)
		}
		sessions.Flash(c, "error", taskNotFoundNotice)
		return nil, false
	}
	return task, true
}

func taskIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errors.New("invalid task id")
	}
	return uint(id), nil
}

func taskOpFailed(c *fiber.Ctx, userID uint, err error) error {
	if errors.Is(err, database.ErrTaskNotFound) {
		sessions.Flash(c, "error", taskNotFoundNotice)
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	log.Printf("Task operation failed for user %d: %v", userID, err)
	return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
}
