package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutera-org/tutera-frontend-sub001/internal/session"
	"github.com/tutera-org/tutera-frontend-sub001/internal/upstream"
)

// SignInRequest represents a sign-in request
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenPair carries the session credential issued by the backend
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// loginUpstreamBody tolerates both token layouts the backend has shipped:
// flat at the top level, or nested under data.tokens
type loginUpstreamBody struct {
	TokenPair
	User json.RawMessage `json:"user"`
	Data struct {
		Tokens TokenPair       `json:"tokens"`
		User   json.RawMessage `json:"user"`
	} `json:"data"`
}

func (b *loginUpstreamBody) tokens() TokenPair {
	if b.Data.Tokens.AccessToken != "" {
		return b.Data.Tokens
	}
	return b.TokenPair
}

func (b *loginUpstreamBody) user() json.RawMessage {
	if len(b.Data.User) > 0 {
		return b.Data.User
	}
	return b.User
}

// @Summary Sign in
// @Description Authenticate against the upstream API and establish the cookie session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Sign-in request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/signIn [post]
func (s *Server) signIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	resp, err := s.client(c).DoJSON(c.Request.Context(), http.MethodPost, "/v1/auth/login", req)
	if err != nil {
		s.respondError(c, err, "/v1/auth/login")
		return
	}

	var body loginUpstreamBody
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		s.respondError(c, err, "/v1/auth/login")
		return
	}

	tokens := body.tokens()
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		s.logger.Error().Msg("Upstream login response carried no token pair")
		c.JSON(http.StatusInternalServerError, gin.H{"error": upstream.GenericMessage})
		return
	}

	// Cookies are the authoritative credential; the mirror only backs
	// cookie-less callers
	session.SetSessionCookies(c.Writer, tokens.AccessToken, tokens.RefreshToken, s.config.Production)
	if err := s.tokens.Set(tokens.AccessToken); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist token mirror")
	}

	event := s.logger.Info()
	if claims, err := session.PeekClaims(tokens.AccessToken); err == nil {
		event = event.Str("subject", claims.Subject).Str("email", claims.Email)
	}
	event.Msg("User signed in")

	data := gin.H{
		"tokens": tokens,
	}
	if user := body.user(); len(user) > 0 {
		data["user"] = user
	}

	c.JSON(resp.StatusCode, gin.H{
		"message": "Signed in successfully",
		"data":    data,
	})
}

// @Summary Logout
// @Description Terminate the session; cookies are cleared even when the upstream call fails
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/tenantLogout [post]
func (s *Server) tenantLogout(c *gin.Context) {
	resp, err := s.client(c).Do(c.Request.Context(), http.MethodPost, "/v1/auth/logout", nil, "")

	// Cookie clearing is guaranteed regardless of the upstream outcome:
	// client-side session termination outranks strict success reporting
	session.ClearSessionCookies(c.Writer, s.config.Production)
	if clearErr := s.tokens.Clear(); clearErr != nil {
		s.logger.Warn().Err(clearErr).Msg("Failed to clear token mirror")
	}

	if err != nil {
		s.respondError(c, err, "/v1/auth/logout")
		return
	}

	s.logger.Info().Msg("User logged out")

	if len(resp.Body) == 0 {
		c.JSON(resp.StatusCode, gin.H{"message": "Logged out successfully"})
		return
	}
	c.Data(resp.StatusCode, "application/json", resp.Body)
}

// @Summary Sign up
// @Description Register a learner account on the upstream API
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/tenantSignUp [post]
func (s *Server) tenantSignUp(c *gin.Context) {
	s.forward(c, http.MethodPost, "/v1/auth/register/learner")
}
