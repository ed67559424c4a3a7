package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCoursesPassthrough(t *testing.T) {
	upstreamBody := `[{"id":"c1","title":"Go for Creators"},{"id":"c2","title":"Advanced Lessons"}]`
	up := newRecordingUpstream(t, http.StatusOK, upstreamBody)
	s := newTestServer(t, up.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "at"})
	w := perform(s, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.MethodGet, up.lastMethod.Load())
	assert.Equal(t, "/v1/courses", up.lastPath.Load())
	// Success bodies are relayed byte-for-byte
	assert.Equal(t, upstreamBody, w.Body.String())
	// The inbound cookie jar rides along
	assert.Equal(t, "accessToken=at", up.lastCookie.Load())
}

func TestCreateCourseForwardsBody(t *testing.T) {
	up := newRecordingUpstream(t, http.StatusCreated, `{"id":"c3"}`)
	s := newTestServer(t, up.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses",
		strings.NewReader(`{"title":"New Course","price":49}`))
	req.Header.Set("Content-Type", "application/json")
	w := perform(s, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, http.MethodPost, up.lastMethod.Load())
	assert.JSONEq(t, `{"title":"New Course","price":49}`, up.body())
	assert.JSONEq(t, `{"id":"c3"}`, w.Body.String())
}

func TestPublishCourseRejectsInvalidStatus(t *testing.T) {
	up := newRecordingUpstream(t, http.StatusOK, `{}`)
	s := newTestServer(t, up.URL)

	tests := []struct {
		name string
		body string
	}{
		{name: "unknown status", body: `{"status":"LIVE"}`},
		{name: "lowercase status", body: `{"status":"published"}`},
		{name: "empty status", body: `{"status":""}`},
		{name: "missing status", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/courses/c1/publish", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := perform(s, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Invalid status. Must be DRAFT, PUBLISHED, or ARCHIVED"}`, w.Body.String())
		})
	}

	assert.Equal(t, int32(0), up.calls.Load())
}

func TestPublishCourseForwardsValidStatus(t *testing.T) {
	upstreamBody := `{"id":"c1","status":"PUBLISHED"}`
	up := newRecordingUpstream(t, http.StatusOK, upstreamBody)
	s := newTestServer(t, up.URL)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/courses/c1/publish",
		strings.NewReader(`{"status":"PUBLISHED"}`))
	req.Header.Set("Content-Type", "application/json")
	w := perform(s, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/v1/courses/c1/publish", up.lastPath.Load())
	assert.JSONEq(t, `{"status":"PUBLISHED"}`, up.body())
	assert.Equal(t, upstreamBody, w.Body.String())
}

func TestPublishCourseRequiresID(t *testing.T) {
	up := newRecordingUpstream(t, http.StatusOK, `{}`)
	s := newTestServer(t, up.URL)

	// Routed requests always carry an id; exercise the guard directly
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/publish", strings.NewReader(`{"status":"DRAFT"}`))

	s.publishCourse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Course id is required"}`, w.Body.String())
	assert.Equal(t, int32(0), up.calls.Load())
}

func TestCourseDetailsPassthrough(t *testing.T) {
	upstreamBody := `{"id":"c1","lessons":[{"id":"l1"}]}`
	up := newRecordingUpstream(t, http.StatusOK, upstreamBody)
	s := newTestServer(t, up.URL)

	w := perform(s, httptest.NewRequest(http.MethodGet, "/api/v1/coursesDetails/c1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/v1/courses/c1/details", up.lastPath.Load())
	assert.Equal(t, upstreamBody, w.Body.String())
}

func TestCourseDetailsUpstreamUnreachable(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	s := newTestServer(t, dead.URL)

	w := perform(s, httptest.NewRequest(http.MethodGet, "/api/v1/coursesDetails/c1", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Something went wrong. Please try again."}`, w.Body.String())
}

func TestCoursesUpstreamErrorIsNormalized(t *testing.T) {
	up := newRecordingUpstream(t, http.StatusForbidden, `{"error":"Creators only"}`)
	s := newTestServer(t, up.URL)

	w := perform(s, httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil))

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Creators only"}`, w.Body.String())
}
