package session

import (
	"net/http"
	"time"
)

// Cookie names shared with the browser front end.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// cookieTTL matches the refresh token lifetime issued by the backend
const cookieTTL = 7 * 24 * time.Hour

// SetSessionCookies writes both session cookies on the outgoing response.
// Cookies are httpOnly and SameSite=Lax; the Secure flag is set in production.
func SetSessionCookies(w http.ResponseWriter, accessToken, refreshToken string, secure bool) {
	setCookie(w, AccessTokenCookie, accessToken, int(cookieTTL.Seconds()), secure)
	setCookie(w, RefreshTokenCookie, refreshToken, int(cookieTTL.Seconds()), secure)
}

// ClearSessionCookies expires both session cookies on the outgoing response.
// Callers must invoke this on logout regardless of the upstream outcome.
func ClearSessionCookies(w http.ResponseWriter, secure bool) {
	setCookie(w, AccessTokenCookie, "", -1, secure)
	setCookie(w, RefreshTokenCookie, "", -1, secure)
}

func setCookie(w http.ResponseWriter, name, value string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
