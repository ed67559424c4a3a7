package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutera-org/tutera-frontend-sub001/internal/upstream"
)

// respondWrappedError is the {success:false} variant of respondError used
// by the dashboard and enrollment endpoints. The per-endpoint shape split
// is a deliberate contract with the front end, not something to unify.
func (s *Server) respondWrappedError(c *gin.Context, err error, path string) {
	status, message := upstream.Normalize(err)
	s.logger.Error().
		Err(err).
		Str("upstream_path", path).
		Int("status", status).
		Msg("Upstream call failed")
	c.JSON(status, gin.H{"success": false, "error": message})
}

// @Summary Creator dashboard
// @Description Dashboard payload wrapped as {success,data}
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/dashboard [get]
func (s *Server) creatorDashboard(c *gin.Context) {
	resp, err := s.client(c).Do(c.Request.Context(), http.MethodGet, "/v1/creator/dashboard", nil, "")
	if err != nil {
		s.respondWrappedError(c, err, "/v1/creator/dashboard")
		return
	}

	data := json.RawMessage(resp.Body)
	if len(data) == 0 {
		data = json.RawMessage("null")
	}

	c.JSON(resp.StatusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// @Summary Enroll in a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /api/v1/enrollment [post]
func (s *Server) enroll(c *gin.Context) {
	resp, err := s.client(c).Do(c.Request.Context(), http.MethodPost, "/v1/enrollments/enroll", c.Request.Body, c.ContentType())
	if err != nil {
		s.respondWrappedError(c, err, "/v1/enrollments/enroll")
		return
	}

	c.Data(resp.StatusCode, "application/json", resp.Body)
}

// @Summary Mark lesson as completed
// @Tags enrollments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/markAsCompleted [patch]
func (s *Server) markLessonCompleted(c *gin.Context) {
	s.forward(c, http.MethodPatch, "/v1/enrollments/complete-lesson")
}

// @Summary List enrolled courses
// @Tags enrollments
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Router /api/v1/studentsCourses [get]
func (s *Server) studentCourses(c *gin.Context) {
	s.forward(c, http.MethodGet, "/v1/enrollments")
}

// @Summary Enrolled course details
// @Tags enrollments
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/studentCourseDetails/{id} [get]
func (s *Server) studentCourseDetails(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Course id is required"})
		return
	}

	s.forward(c, http.MethodGet, "/v1/enrollments/"+id+"/details")
}
