package handlers

import (
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvasiljevic/projekti-api/internal/database"
	apierrors "github.com/mvasiljevic/projekti-api/internal/errors"
	"github.com/mvasiljevic/projekti-api/internal/models"
	"github.com/mvasiljevic/projekti-api/internal/services"
	"github.com/mvasiljevic/projekti-api/internal/storage"
)

// ProjectHandler serves the gallery listing, project detail, gated creation
// and view recording.
type ProjectHandler struct {
	deadlineService *services.DeadlineService
	store           storage.ObjectStore
	baseURL         string
}

func NewProjectHandler(deadlineService *services.DeadlineService, store storage.ObjectStore, baseURL string) *ProjectHandler {
	return &ProjectHandler{
		deadlineService: deadlineService,
		store:           store,
		baseURL:         baseURL,
	}
}

// projectRow is one gallery entry: the project joined to its author with the
// vote tallies and view count aggregated in the query.
type projectRow struct {
	ID          uint64       `json:"id"`
	Naziv       string       `json:"naziv"`
	Opis        string       `json:"opis"`
	Tehnologije string       `json:"tehnologije"`
	Ciljevi     string       `json:"ciljevi"`
	PlanRada    string       `json:"plan_rada"`
	CreatedAt   time.Time    `json:"created_at"`
	Author      string       `json:"author"`
	AuthorEmail string       `json:"author_email,omitempty"`
	Upvotes     int64        `json:"upvotes"`
	Downvotes   int64        `json:"downvotes"`
	Views       int64        `json:"views"`
	Comments    []commentRow `gorm:"-" json:"comments"`
}

type commentRow struct {
	ProjectID uint64    `json:"-"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author"`
}

const projectColumns = `
	p.id, p.naziv, p.opis, p.tehnologije, p.ciljevi, p.plan_rada, p.created_at,
	u.name AS author,
	COALESCE(SUM(CASE WHEN v.vote_type = 'upvote' THEN 1 ELSE 0 END), 0) AS upvotes,
	COALESCE(SUM(CASE WHEN v.vote_type = 'downvote' THEN 1 ELSE 0 END), 0) AS downvotes,
	(SELECT COUNT(*) FROM project_views pv WHERE pv.project_id = p.id) AS views`

const projectListQuery = `
SELECT` + projectColumns + `
FROM projects p
JOIN users u ON p.user_id = u.id
LEFT JOIN votes v ON p.id = v.project_id
GROUP BY p.id, p.naziv, p.opis, p.tehnologije, p.ciljevi, p.plan_rada, p.created_at, u.name
ORDER BY p.created_at DESC`

const projectDetailQuery = `
SELECT` + projectColumns + `,
	u.email AS author_email
FROM projects p
JOIN users u ON p.user_id = u.id
LEFT JOIN votes v ON p.id = v.project_id
WHERE p.id = ?
GROUP BY p.id, p.naziv, p.opis, p.tehnologije, p.ciljevi, p.plan_rada, p.created_at, u.name, u.email`

// loadComments fetches the comment threads for a set of projects in one
// query, grouped by project, ordered oldest first.
func loadComments(projectIDs []uint64) (map[uint64][]commentRow, error) {
	byProject := make(map[uint64][]commentRow, len(projectIDs))
	if len(projectIDs) == 0 {
		return byProject, nil
	}

	var rows []commentRow
	err := database.GetDB().Raw(`
		SELECT c.project_id, c.comment, c.created_at, u.name AS author
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.project_id IN ?
		ORDER BY c.created_at ASC`, projectIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		byProject[row.ProjectID] = append(byProject[row.ProjectID], row)
	}
	return byProject, nil
}

// ListProjects returns all projects with author, tallies, view count and
// nested comments.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var projects []projectRow
	if err := database.GetDB().Raw(projectListQuery).Scan(&projects).Error; err != nil {
		log.Printf("Error fetching projects: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	ids := make([]uint64, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	comments, err := loadComments(ids)
	if err != nil {
		log.Printf("Error fetching comments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	for i := range projects {
		projects[i].Comments = comments[projects[i].ID]
		if projects[i].Comments == nil {
			projects[i].Comments = []commentRow{}
		}
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject returns one project in the listing shape plus the author email.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Nevažeći ID projekta")
		return
	}

	var rows []projectRow
	if err := database.GetDB().Raw(projectDetailQuery, projectID).Scan(&rows).Error; err != nil {
		log.Printf("Error fetching project %d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		return
	}
	if len(rows) == 0 {
		apierrors.NotFound(c, "Projekat nije pronađen")
		return
	}

	project := rows[0]
	comments, err := loadComments([]uint64{project.ID})
	if err != nil {
		log.Printf("Error fetching comments for project %d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		return
	}
	project.Comments = comments[project.ID]
	if project.Comments == nil {
		project.Comments = []commentRow{}
	}

	c.JSON(http.StatusOK, project)
}

type createProjectInput struct {
	UserID      uint64 `json:"user_id"`
	Naziv       string `json:"naziv"`
	Opis        string `json:"opis"`
	Tehnologije string `json:"tehnologije"`
	Ciljevi     string `json:"ciljevi"`
	PlanRada    string `json:"plan_rada"`
}

// CreateProject inserts a project if the submission window is open, then
// stores any attached files. Files saved before a mid-batch failure stay
// persisted; there is no rollback across the database and the object store.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	status, err := h.deadlineService.RegistrationStatus(time.Now())
	if err != nil {
		log.Printf("Error checking registration status: %v", err)
		apierrors.Fail(c, http.StatusInternalServerError, "Greška pri kreiranju projekta")
		return
	}
	if !status.IsOpen {
		apierrors.Fail(c, http.StatusForbidden, "Prijava projekata je zatvorena")
		return
	}

	var input createProjectInput
	var files []*multipart.FileHeader

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			apierrors.Fail(c, http.StatusBadRequest, "Neispravan format zahteva")
			return
		}
		input.UserID, _ = strconv.ParseUint(c.PostForm("user_id"), 10, 64)
		input.Naziv = c.PostForm("naziv")
		input.Opis = c.PostForm("opis")
		input.Tehnologije = c.PostForm("tehnologije")
		input.Ciljevi = c.PostForm("ciljevi")
		input.PlanRada = c.PostForm("plan_rada")
		files = form.File["files[]"]
		if len(files) == 0 {
			files = form.File["files"]
		}
	} else {
		if err := c.ShouldBindJSON(&input); err != nil {
			apierrors.Fail(c, http.StatusBadRequest, "Neispravan format zahteva")
			return
		}
	}

	project := models.Project{
		UserID:      input.UserID,
		Naziv:       input.Naziv,
		Opis:        input.Opis,
		Tehnologije: input.Tehnologije,
		Ciljevi:     input.Ciljevi,
		PlanRada:    input.PlanRada,
	}
	if err := database.GetDB().Create(&project).Error; err != nil {
		log.Printf("Error creating project: %v", err)
		apierrors.Fail(c, http.StatusInternalServerError, "Greška pri kreiranju projekta")
		return
	}

	stored := make([]gin.H, 0, len(files))
	for _, fh := range files {
		desc, err := saveProjectFile(c, h.store, h.baseURL, project.ID, &project.UserID, fh)
		if err != nil {
			log.Printf("Error storing file %q for project %d: %v", fh.Filename, project.ID, err)
			apierrors.Fail(c, http.StatusInternalServerError, "Greška pri čuvanju fajlova")
			return
		}
		stored = append(stored, desc)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"project_id": project.ID,
		"message":    "Projekat je uspešno kreiran",
		"files":      stored,
	})
}

// RecordView appends one view event. No deduplication, no rate limit; an
// anonymous view simply has no user id.
func (h *ProjectHandler) RecordView(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Nevažeći ID projekta")
		return
	}

	type viewRequest struct {
		UserID *uint64 `json:"userId"`
	}
	var req viewRequest
	// Body is optional; anonymous views post nothing.
	_ = c.ShouldBindJSON(&req)

	view := models.ProjectView{
		ProjectID: projectID,
		UserID:    req.UserID,
		IPAddress: c.ClientIP(),
	}
	if err := database.GetDB().Create(&view).Error; err != nil {
		log.Printf("Error recording view for project %d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
