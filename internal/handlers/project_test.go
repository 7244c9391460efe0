package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mvasiljevic/projekti-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type projectTestEnv struct {
	db     *gorm.DB
	store  *memStore
	router http.Handler
}

func setupProjectTestEnv(t *testing.T) projectTestEnv {
	t.Helper()

	db := newTestDB(t)
	store := newMemStore()
	return projectTestEnv{db: db, store: store, router: newTestRouter(store)}
}

func TestProjectHandler_CreateProjectClosedWithoutDeadline(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := createTestUser(t, env.db, "Milan", "milan@example.com")

	w := performJSON(t, env.router, http.MethodPost, "/api/projects", map[string]any{
		"user_id": user.ID,
		"naziv":   "Moj projekat",
	})

	require.Equal(t, http.StatusForbidden, w.Code)

	var resp struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)

	var count int64
	env.db.Model(&models.Project{}).Count(&count)
	require.Zero(t, count)
}

func TestProjectHandler_CreateProjectClosedAfterDeadline(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := createTestUser(t, env.db, "Milan", "milan@example.com")
	createSubmissionDeadline(t, env.db, time.Now().Add(-24*time.Hour))

	w := performJSON(t, env.router, http.MethodPost, "/api/projects", map[string]any{
		"user_id": user.ID,
		"naziv":   "Zakasneli projekat",
	})

	require.Equal(t, http.StatusForbidden, w.Code)
}

// Closed gallery, admin posts a submission deadline, then creation succeeds.
func TestProjectHandler_CreateProjectScenario(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := createTestUser(t, env.db, "Milan", "milan@example.com")

	w := performJSON(t, env.router, http.MethodPost, "/api/projects", map[string]any{
		"user_id": user.ID,
		"naziv":   "Moj projekat",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = performJSON(t, env.router, http.MethodPost, "/api/deadlines", map[string]any{
		"title":         "Prijava projekata",
		"deadline_date": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"created_by":    user.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, env.router, http.MethodPost, "/api/projects", map[string]any{
		"user_id":     user.ID,
		"naziv":       "Moj projekat",
		"opis":        "Opis projekta",
		"tehnologije": "Go, MySQL",
		"ciljevi":     "Ciljevi projekta",
		"plan_rada":   "Plan rada",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success   bool   `json:"success"`
		ProjectID uint64 `json:"project_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotZero(t, resp.ProjectID)
}

func TestProjectHandler_CreateProjectWithFiles(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := createTestUser(t, env.db, "Milan", "milan@example.com")
	createSubmissionDeadline(t, env.db, time.Now().Add(48*time.Hour))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("user_id", fmt.Sprintf("%d", user.ID)))
	require.NoError(t, mw.WriteField("naziv", "Projekat sa fajlovima"))
	require.NoError(t, mw.WriteField("opis", "opis"))
	for _, name := range []string{"prvi.txt", "drugi.txt"} {
		part, err := mw.CreateFormFile("files[]", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("sadržaj " + name))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/projects", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success   bool   `json:"success"`
		ProjectID uint64 `json:"project_id"`
		Files     []struct {
			ObjectName   string `json:"object_name"`
			OriginalName string `json:"original_name"`
			URL          string `json:"url"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Files, 2)

	var fileCount int64
	env.db.Model(&models.ProjectFile{}).Where("project_id = ?", resp.ProjectID).Count(&fileCount)
	require.EqualValues(t, 2, fileCount)

	require.Len(t, env.store.objects, 2)
	for _, f := range resp.Files {
		require.Contains(t, env.store.objects, f.ObjectName)
		require.Contains(t, f.URL, "/files?key=")
	}
}

type projectListEntry struct {
	ID          uint64 `json:"id"`
	Naziv       string `json:"naziv"`
	Author      string `json:"author"`
	AuthorEmail string `json:"author_email"`
	Upvotes     int64  `json:"upvotes"`
	Downvotes   int64  `json:"downvotes"`
	Views       int64  `json:"views"`
	Comments    []struct {
		Comment string `json:"comment"`
		Author  string `json:"author"`
	} `json:"comments"`
}

func TestProjectHandler_ListProjects(t *testing.T) {
	env := setupProjectTestEnv(t)
	milan := createTestUser(t, env.db, "Milan", "milan@example.com")
	ana := createTestUser(t, env.db, "Ana", "ana@example.com")

	older := time.Now().Add(-2 * time.Hour)
	newer := time.Now().Add(-1 * time.Hour)
	first := createTestProject(t, env.db, milan.ID, "Prvi projekat", older)
	second := createTestProject(t, env.db, ana.ID, "Drugi projekat", newer)

	require.NoError(t, env.db.Create(&models.Vote{ProjectID: first.ID, UserID: milan.ID, VoteType: models.VoteTypeUp}).Error)
	require.NoError(t, env.db.Create(&models.Vote{ProjectID: first.ID, UserID: ana.ID, VoteType: models.VoteTypeDown}).Error)

	require.NoError(t, env.db.Create(&models.Comment{
		ProjectID: first.ID, UserID: ana.ID, Comment: "Prvi komentar", CreatedAt: older.Add(time.Minute),
	}).Error)
	require.NoError(t, env.db.Create(&models.Comment{
		ProjectID: first.ID, UserID: milan.ID, Comment: "Drugi komentar", CreatedAt: older.Add(2 * time.Minute),
	}).Error)

	for i := 0; i < 3; i++ {
		require.NoError(t, env.db.Create(&models.ProjectView{ProjectID: first.ID, IPAddress: "127.0.0.1"}).Error)
	}

	w := performJSON(t, env.router, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []projectListEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)

	// Newest first
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)

	entry := list[1]
	require.Equal(t, "Milan", entry.Author)
	require.EqualValues(t, 1, entry.Upvotes)
	require.EqualValues(t, 1, entry.Downvotes)
	require.EqualValues(t, 3, entry.Views)
	require.Len(t, entry.Comments, 2)
	require.Equal(t, "Prvi komentar", entry.Comments[0].Comment)
	require.Equal(t, "Ana", entry.Comments[0].Author)
	require.Equal(t, "Drugi komentar", entry.Comments[1].Comment)

	// No related rows: everything defaults to zero and an empty comment list
	require.Zero(t, list[0].Upvotes)
	require.Zero(t, list[0].Downvotes)
	require.Zero(t, list[0].Views)
	require.NotNil(t, list[0].Comments)
	require.Empty(t, list[0].Comments)
}

func TestProjectHandler_GetProject(t *testing.T) {
	env := setupProjectTestEnv(t)
	milan := createTestUser(t, env.db, "Milan", "milan@example.com")
	project := createTestProject(t, env.db, milan.ID, "Prvi projekat", time.Now())

	w := performJSON(t, env.router, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entry projectListEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	require.Equal(t, project.ID, entry.ID)
	require.Equal(t, "Milan", entry.Author)
	require.Equal(t, "milan@example.com", entry.AuthorEmail)
}

func TestProjectHandler_GetProjectNotFound(t *testing.T) {
	env := setupProjectTestEnv(t)

	w := performJSON(t, env.router, http.MethodGet, "/api/projects/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_RecordView(t *testing.T) {
	env := setupProjectTestEnv(t)
	milan := createTestUser(t, env.db, "Milan", "milan@example.com")
	project := createTestProject(t, env.db, milan.ID, "Prvi projekat", time.Now())

	path := fmt.Sprintf("/api/projects/%d/view", project.ID)

	w := performJSON(t, env.router, http.MethodPost, path, map[string]any{"userId": milan.ID})
	require.Equal(t, http.StatusOK, w.Code)

	// Anonymous view: no body at all
	w = performJSON(t, env.router, http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []models.ProjectView
	require.NoError(t, env.db.Where("project_id = ?", project.ID).Order("id ASC").Find(&views).Error)
	require.Len(t, views, 2)
	require.NotNil(t, views[0].UserID)
	require.Equal(t, milan.ID, *views[0].UserID)
	require.Nil(t, views[1].UserID)
	require.NotEmpty(t, views[0].IPAddress)
}
