package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/repoviz/repoviz/internal/collab"
)

type addCommentRequest struct {
	Author  string `json:"author" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type shareViewRequest struct {
	CreatedBy      string             `json:"created_by" binding:"required"`
	RepoPath       string             `json:"repo_path"`
	ViewMode       string             `json:"view_mode"`
	Filters        collab.ViewFilters `json:"filters"`
	CameraPosition [3]float64         `json:"camera_position"`
}

// handleAddComment serves POST /api/comments/:id, attaching a comment to the
// commit named by id.
func (s *Server) handleAddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := s.store.AddComment(c.Param("id"), req.Author, req.Content)
	s.logger.InfoContext(c.Request.Context(), "comment added", "id", comment.ID)

	c.JSON(http.StatusCreated, comment)
}

// handleGetComments serves GET /api/comments/:id, listing a commit's
// comments oldest first.
func (s *Server) handleGetComments(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.CommentsFor(c.Param("id")))
}

// handleDeleteComment serves DELETE /api/comments/:id. Deleting an unknown
// comment is a no-op.
func (s *Server) handleDeleteComment(c *gin.Context) {
	s.store.DeleteComment(c.Param("id"))
	s.logger.InfoContext(c.Request.Context(), "comment deleted", "id", c.Param("id"))

	c.Status(http.StatusNoContent)
}

// handleShareView serves POST /api/views/share, storing a view state behind
// a short shareable id.
func (s *Server) handleShareView(c *gin.Context) {
	var req shareViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := s.store.ShareView(req.CreatedBy, req.RepoPath, req.ViewMode, req.Filters, req.CameraPosition)
	s.logger.InfoContext(c.Request.Context(), "shared view created", "id", view.ID)

	c.JSON(http.StatusCreated, view)
}

// handleGetView serves GET /api/views/:view_id.
func (s *Server) handleGetView(c *gin.Context) {
	view, ok := s.store.View(c.Param("view_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "View not found"})
		return
	}

	c.JSON(http.StatusOK, view)
}
