package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"todoweb/database"
	"todoweb/models"

	"github.com/gofiber/fiber/v2"
)

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newAPIClient(t *testing.T, app *fiber.App) *apiClient {
	return &apiClient{t: t, app: app}
}

func (a *apiClient) request(method, path string, payload interface{}) *http.Response {
	a.t.Helper()

	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			a.t.Fatalf("failed to marshal payload: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.app.Test(req, -1)
	if err != nil {
		a.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

// signupAndLogin registers an account through the page flow and then logs
// in over the API, returning a token-carrying client.
func signupAndLogin(t *testing.T, app *fiber.App, username, email, password string) *apiClient {
	t.Helper()

	b := newBrowser(t, app)
	wantRedirect(t, b.signup(username, email, password), "/login")

	c := newAPIClient(t, app)
	resp := c.request(http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("api login status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	decode(t, resp, &loginResp)
	if loginResp.Token == "" {
		t.Fatal("api login returned an empty token")
	}
	c.token = loginResp.Token
	return c
}

func TestAPILoginInvalidCredentials(t *testing.T) {
	app := newTestApp(t)
	b := newBrowser(t, app)
	wantRedirect(t, b.signup("alice", "alice@example.com", "hunter22"), "/login")

	c := newAPIClient(t, app)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "mallory", "hunter22"},
		{"wrong password", "alice", "wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := c.request(http.MethodPost, "/api/login", map[string]string{
				"username": tt.username,
				"password": tt.password,
			})
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
			}
			var errResp struct {
				Error string `json:"error"`
			}
			decode(t, resp, &errResp)
			if errResp.Error != "Invalid username or password" {
				t.Fatalf("error = %q, want the generic message", errResp.Error)
			}
		})
	}
}

func TestAPILoginDatabaseErrorIsNotInvalidCredentials(t *testing.T) {
	app := newTestApp(t)
	b := newBrowser(t, app)
	wantRedirect(t, b.signup("alice", "alice@example.com", "hunter22"), "/login")

	sqlDB, err := database.DB.DB()
	if err != nil {
		t.Fatalf("failed to get underlying connection: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}

	c := newAPIClient(t, app)
	resp := c.request(http.MethodPost, "/api/login", map[string]string{
		"username": "alice",
		"password": "hunter22",
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
}

func TestAPIRequiresToken(t *testing.T) {
	app := newTestApp(t)
	c := newAPIClient(t, app)

	resp := c.request(http.MethodGet, "/api/tasks", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	c.token = "not-a-real-token"
	resp = c.request(http.MethodGet, "/api/tasks", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status with garbage token = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestAPITaskLifecycle(t *testing.T) {
	app := newTestApp(t)
	c := signupAndLogin(t, app, "alice", "alice@example.com", "hunter22")

	resp := c.request(http.MethodPost, "/api/tasks", map[string]string{
		"title":       "Water the plants",
		"category":    "Home",
		"date":        "2099-01-01",
		"description": "all of them",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	var created models.Task
	decode(t, resp, &created)
	if created.ID == 0 || created.Done {
		t.Fatalf("created task = %+v, want an id and done=false", created)
	}
	if created.CategorySlug != "home" {
		t.Fatalf("category slug = %q, want %q", created.CategorySlug, "home")
	}

	id := strconv.Itoa(int(created.ID))

	var listed []models.Task
	decode(t, c.request(http.MethodGet, "/api/tasks", nil), &listed)
	if len(listed) != 1 || listed[0].Title != "Water the plants" {
		t.Fatalf("listed tasks = %+v, want the created task", listed)
	}

	resp = c.request(http.MethodPut, "/api/tasks/"+id, map[string]string{
		"title":       "Water the garden",
		"category":    "Outdoors",
		"date":        "2099-06-15",
		"description": "every bed",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var updated models.Task
	decode(t, resp, &updated)
	if updated.Title != "Water the garden" || updated.Category != "Outdoors" {
		t.Fatalf("updated task = %+v, want the submitted values", updated)
	}

	// Marking done twice is fine.
	for i := 0; i < 2; i++ {
		resp = c.request(http.MethodPost, "/api/tasks/"+id+"/done", map[string]bool{"done": true})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("done status on call %d = %d, want %d", i+1, resp.StatusCode, http.StatusOK)
		}
	}
	var got models.Task
	decode(t, c.request(http.MethodGet, "/api/tasks/"+id, nil), &got)
	if !got.Done {
		t.Fatal("task not done after two done calls")
	}

	resp = c.request(http.MethodDelete, "/api/tasks/"+id, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	resp = c.request(http.MethodGet, "/api/tasks/"+id, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestAPICreateMalformedDate(t *testing.T) {
	app := newTestApp(t)
	c := signupAndLogin(t, app, "alice", "alice@example.com", "hunter22")

	resp := c.request(http.MethodPost, "/api/tasks", map[string]string{
		"title": "Broken",
		"date":  "13/1/2099",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d (validation error, not a crash)", resp.StatusCode, http.StatusBadRequest)
	}

	var count int64
	if err := database.DB.Model(&models.Task{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("task count = %d after rejected create, want 0", count)
	}
}

func TestAPICrossUserReturns404(t *testing.T) {
	app := newTestApp(t)
	alice := signupAndLogin(t, app, "alice", "alice@example.com", "hunter22")
	bob := signupAndLogin(t, app, "bob", "bob@example.com", "hunter22")

	resp := alice.request(http.MethodPost, "/api/tasks", map[string]string{
		"title": "Private errand",
		"date":  "2099-01-01",
	})
	var created models.Task
	decode(t, resp, &created)
	id := strconv.Itoa(int(created.ID))
	missing := strconv.Itoa(int(created.ID) + 999)

	// Foreign and nonexistent ids are indistinguishable.
	for _, target := range []string{id, missing} {
		for _, tt := range []struct {
			method string
			path   string
			body   interface{}
		}{
			{http.MethodGet, "/api/tasks/" + target, nil},
			{http.MethodPut, "/api/tasks/" + target, map[string]string{"title": "x", "date": "2099-01-01"}},
			{http.MethodPost, "/api/tasks/" + target + "/done", map[string]bool{"done": true}},
			{http.MethodDelete, "/api/tasks/" + target, nil},
		} {
			resp := bob.request(tt.method, tt.path, tt.body)
			if resp.StatusCode != http.StatusNotFound {
				t.Fatalf("%s %s status = %d, want %d", tt.method, tt.path, resp.StatusCode, http.StatusNotFound)
			}
		}
	}

	// Alice's task is untouched.
	var got models.Task
	decode(t, alice.request(http.MethodGet, "/api/tasks/"+id, nil), &got)
	if got.Done || got.Title != "Private errand" {
		t.Fatalf("cross-user attempts mutated the task: %+v", got)
	}
}
