package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const invalidStatusMessage = "Invalid status. Must be DRAFT, PUBLISHED, or ARCHIVED"

// PublishCourseRequest represents a publish-status change
type PublishCourseRequest struct {
	Status string `json:"status"`
}

// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Router /api/v1/courses [get]
func (s *Server) listCourses(c *gin.Context) {
	s.forward(c, http.MethodGet, "/v1/courses")
}

// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /api/v1/courses [post]
func (s *Server) createCourse(c *gin.Context) {
	s.forward(c, http.MethodPost, "/v1/courses")
}

// @Summary Change course publish status
// @Description Status must be one of DRAFT, PUBLISHED, ARCHIVED
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body PublishCourseRequest true "Publish request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/courses/{id}/publish [patch]
func (s *Server) publishCourse(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Course id is required"})
		return
	}

	var req PublishCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := s.validator.Var(req.Status, "required,oneof=DRAFT PUBLISHED ARCHIVED"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidStatusMessage})
		return
	}

	path := "/v1/courses/" + id + "/publish"
	resp, err := s.client(c).DoJSON(c.Request.Context(), http.MethodPatch, path, req)
	if err != nil {
		s.respondError(c, err, path)
		return
	}

	c.Data(resp.StatusCode, "application/json", resp.Body)
}

// @Summary Course details
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/coursesDetails/{id} [get]
func (s *Server) courseDetails(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Course id is required"})
		return
	}

	s.forward(c, http.MethodGet, "/v1/courses/"+id+"/details")
}
