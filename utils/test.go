package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
	Cookies []*http.Cookie
	// Timeout cancels the request context, for handlers that stream until
	// the client leaves.
	Timeout time.Duration
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Header     http.Header
	Cookies    []*http.Cookie
	Raw        []byte
	Body       map[string]interface{}
}

// Data returns the "data" member of the response envelope.
func (r TestResponse) Data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

// MakeTestRequest makes a test HTTP request
func MakeTestRequest(t *testing.T, router http.Handler, req TestRequest) TestResponse {
	t.Helper()

	// Create request body
	var body []byte
	if req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
	}

	ctx := context.Background()
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.Path, bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	// Set headers
	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	for _, cookie := range req.Cookies {
		httpReq.AddCookie(cookie)
	}

	// Create response recorder
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	resp := TestResponse{
		StatusCode: w.Code,
		Header:     w.Header(),
		Cookies:    w.Result().Cookies(),
		Raw:        w.Body.Bytes(),
	}

	// Parse JSON response bodies only
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &resp.Body); err != nil {
			t.Fatalf("Failed to unmarshal response body: %v", err)
		}
	}
	return resp
}

// AssertResponse asserts the test response
func AssertResponse(t *testing.T, response TestResponse, expectedStatusCode int, expectedBody map[string]interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatusCode, response.StatusCode, string(response.Raw))
	if expectedBody != nil {
		assert.Equal(t, expectedBody, response.Body)
	}
}

// GetTestToken generates a bearer header value for user
func GetTestToken(t *testing.T, user models.User, secret string) string {
	t.Helper()
	token, err := GenerateToken(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return "Bearer " + token
}

// TestRouter returns a gin engine in test mode.
func TestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
