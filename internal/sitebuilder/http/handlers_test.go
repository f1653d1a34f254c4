package http

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/auth"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/content"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/repository"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/service"
)

type testServer struct {
	router *gin.Engine
	repo   *repository.ProjectRepository
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	repo := repository.NewProjectRepository(client)
	writer := content.NewOrchestrator(content.NoopProvider{})
	engine := service.NewEngine(repo, repository.NewKeyedMutex(), writer)

	r := gin.New()
	api := r.Group("/api/v1/sites")
	api.Use(auth.OptionalUser())
	New(engine, writer).Register(api)

	return &testServer{router: r, repo: repo}
}

func (s *testServer) do(t *testing.T, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User-Id", user)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func (s *testServer) createProject(t *testing.T, user string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/sites/projects", user, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp createProjectResponse
	decode(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "business_name", resp.CurrentStep)
	return resp.ProjectID
}

func (s *testServer) chat(t *testing.T, id, user, message string) *service.ChatResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/sites/projects/"+id+"/chat", user, chatRequest{Message: message})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp service.ChatResponse
	decode(t, w, &resp)
	return &resp
}

func TestChat_FullConversation(t *testing.T) {
	s := setupTestServer(t)
	id := s.createProject(t, "alice")

	resp := s.chat(t, id, "alice", "ABC Plumbing and Electrical")
	assert.True(t, resp.Success)
	assert.Equal(t, domain.StepServicesSelection, resp.CurrentStep)
	assert.Equal(t, "plumbing", resp.ProjectSnapshot.Industry)
	assert.Nil(t, resp.TemplatePreviewHints)

	s.chat(t, id, "alice", "Pipe Repair, Wiring Repair")
	s.chat(t, id, "alice", "We fix pipes and wires around town")
	resp = s.chat(t, id, "alice", "1")
	require.NotNil(t, resp.TemplatePreviewHints)
	assert.Equal(t, "#007bff", resp.TemplatePreviewHints.PrimaryColor)

	s.chat(t, id, "alice", "professional")
	s.chat(t, id, "alice", "looks great")

	w := s.do(t, http.MethodGet, "/api/v1/sites/projects/"+id+"/preview", "alice", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	resp = s.chat(t, id, "alice", "BUILD MY WEBSITE")
	assert.Equal(t, domain.StepCompletion, resp.CurrentStep)
	assert.Equal(t, 100, resp.Progress)
	assert.Equal(t, domain.StatusCompleted, resp.ProjectSnapshot.Status)

	w = s.do(t, http.MethodGet, "/api/v1/sites/projects/"+id+"/preview", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<h1>ABC Plumbing and Electrical</h1>")

	w = s.do(t, http.MethodGet, "/api/v1/sites/projects/"+id+"/export", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=ABC_Plumbing_and_Electrical_website.zip`, w.Header().Get("Content-Disposition"))

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"index.html", "style.css", "project-info.txt", "README.txt"}, names)
}

func TestChat_Errors(t *testing.T) {
	s := setupTestServer(t)
	id := s.createProject(t, "alice")

	tests := []struct {
		name       string
		path       string
		user       string
		body       any
		wantStatus int
	}{
		{"missing message", "/api/v1/sites/projects/" + id + "/chat", "alice", map[string]string{}, http.StatusBadRequest},
		{"unknown project", "/api/v1/sites/projects/nope/chat", "alice", chatRequest{Message: "hi"}, http.StatusNotFound},
		{"other owner", "/api/v1/sites/projects/" + id + "/chat", "mallory", chatRequest{Message: "hi"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, tt.path, tt.user, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]any
			decode(t, w, &body)
			assert.Equal(t, false, body["success"])
			assert.True(t, strings.HasPrefix(body["message"].(string), "❌ "), body["message"])
		})
	}
}

func TestChat_InvalidStepIsInternalError(t *testing.T) {
	s := setupTestServer(t)
	p := &domain.Project{OwnerID: "alice", Status: domain.StatusDraft}
	require.NoError(t, s.repo.Create(context.Background(), p, &domain.Conversation{CurrentStep: "nowhere"}))

	w := s.do(t, http.MethodPost, "/api/v1/sites/projects/"+p.ID+"/chat", "alice", chatRequest{Message: "hi"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "nowhere")
}

func TestQuickStartStatusAndList(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/sites/projects/quick-start", "bob", quickStartRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/sites/projects/quick-start", "bob",
		quickStartRequest{BusinessName: "Bob's Bakery", Industry: "bakery"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]any
	decode(t, w, &created)
	id := created["project_id"].(string)

	w = s.do(t, http.MethodGet, "/api/v1/sites/projects/"+id+"/status", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		Project service.ProjectStatus `json:"project"`
	}
	decode(t, w, &status)
	assert.Equal(t, "Bob's Bakery", status.Project.BusinessName)
	assert.Equal(t, domain.StepWelcome, status.Project.CurrentStep)
	assert.Equal(t, 40, status.Project.Progress)

	w = s.do(t, http.MethodGet, "/api/v1/sites/projects", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Projects []service.ProjectSummary `json:"projects"`
	}
	decode(t, w, &list)
	require.Len(t, list.Projects, 1)
	assert.Equal(t, id, list.Projects[0].ID)

	w = s.do(t, http.MethodGet, "/api/v1/sites/projects", "carol", nil)
	decode(t, w, &list)
	assert.Empty(t, list.Projects)
}

func TestCreateProject_DemoUser(t *testing.T) {
	s := setupTestServer(t)
	id := s.createProject(t, "")

	p, err := s.repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, auth.DemoUser, p.OwnerID)
	assert.Equal(t, "Website Project demo-user", p.ProjectName)
}

func TestUpdateProject(t *testing.T) {
	s := setupTestServer(t)
	id := s.createProject(t, "alice")

	w := s.do(t, http.MethodPatch, "/api/v1/sites/projects/"+id, "alice",
		map[string]string{"location": "Springfield", "email": "hi@acme.test", "ignored": "x"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		UpdatedFields []string `json:"updated_fields"`
	}
	decode(t, w, &body)
	assert.Equal(t, []string{"location", "email"}, body.UpdatedFields)

	p, err := s.repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Springfield", p.Location)
	assert.Equal(t, "hi@acme.test", p.Email)
}

func TestExport_NotCompleted(t *testing.T) {
	s := setupTestServer(t)
	id := s.createProject(t, "alice")

	w := s.do(t, http.MethodGet, "/api/v1/sites/projects/"+id+"/export", "alice", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGenerateBlogAndMetrics(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/sites/content/blog", "alice", map[string]string{"topic": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/sites/content/blog", "alice", blogRequest{Topic: "grow sales"})
	require.Equal(t, http.StatusOK, w.Code)
	var blog struct {
		Content domain.BlogPost `json:"content"`
		Source  string          `json:"source"`
	}
	decode(t, w, &blog)
	assert.Equal(t, "How to grow sales", blog.Content.Title)
	assert.Equal(t, "fallback", blog.Source)

	w = s.do(t, http.MethodGet, "/api/v1/sites/metrics", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var metrics struct {
		Metrics content.MetricsSnapshot `json:"metrics"`
	}
	decode(t, w, &metrics)
	assert.Equal(t, int64(1), metrics.Metrics.ProviderCalls)
	assert.Equal(t, int64(1), metrics.Metrics.Fallbacks)
}
