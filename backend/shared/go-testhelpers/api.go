package testhelpers

import (
	"bytes"
	"io"
	"net/http"
	"net/http/cookiejar"

	"github.com/newsroom/mono-repo/backend/shared/go-middleware"
	"github.com/stretchr/testify/require"
)

// BuildAuthRequest sets standard headers for authenticated test requests.
// The token travels in the access-token cookie and the client IP in
// X-Forwarded-For, matching the token's "ip" claim.
func (h *TestHelper) BuildAuthRequest(method, reqURL, jwtString string, body []byte, clientIP string) *http.Request {
	req, err := http.NewRequest(method, reqURL, bytes.NewReader(body))
	require.NoError(h.T, err)

	req.Header.Set("X-Forwarded-For", clientIP)
	if jwtString != "" {
		req.AddCookie(&http.Cookie{
			Name:  middleware.AccessTokenCookieName,
			Value: jwtString,
			Path:  "/",
		})
	}

	if (method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch) && len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// NewHTTPClient creates an HTTP client with a cookie jar for session management.
func (h *TestHelper) NewHTTPClient() *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(h.T, err)
	return &http.Client{Jar: jar}
}

// DoRequest performs an HTTP request and asserts that no network-level error occurred.
func (h *TestHelper) DoRequest(req *http.Request, client *http.Client) *http.Response {
	if client.Jar != nil {
		client.Jar.SetCookies(req.URL, req.Cookies())
	}
	resp, err := client.Do(req)
	require.NoError(h.T, err, "HTTP request failed")
	return resp
}

// ReadBody reads the response body and returns it as a string for logging or inspection.
func (h *TestHelper) ReadBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return "<nil response or body>"
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	// After reading, we need to restore the body so it can be read again if needed.
	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	require.NoError(h.T, err, "Failed to read response body")
	return string(bodyBytes)
}
