package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StandardResponse is the JSON envelope of every non-streaming response.
// Error envelopes carry the request id so a client report can be matched to
// the request log.
type StandardResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func respond(c *gin.Context, code int, resp StandardResponse) {
	if resp.Status == "error" {
		resp.RequestID = RequestID(c)
	}
	c.JSON(code, resp)
}

// Success sends a 200 envelope.
func Success(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusOK, StandardResponse{Status: "success", Message: message, Data: data})
}

// Created sends a 201 envelope.
func Created(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusCreated, StandardResponse{Status: "success", Message: message, Data: data})
}

// Error sends an error envelope. A non-nil detail is reported under
// data.error.
func Error(c *gin.Context, statusCode int, message string, detail interface{}) {
	resp := StandardResponse{Status: "error", Message: message}
	if detail != nil {
		resp.Data = gin.H{"error": detail}
	}
	respond(c, statusCode, resp)
}

// RespondError maps an error returned by a service onto the response
// envelope. Errors that are not AppErrors are reported as 500s.
func RespondError(c *gin.Context, err error) {
	appErr := GetAppError(err)
	if appErr == nil {
		LogError("Unhandled error: %v", err)
		InternalServerError(c, ErrInternalServer, nil)
		return
	}
	if appErr.Code >= http.StatusInternalServerError {
		LogError("%s: %v", appErr.Message, appErr.Err)
	}
	Error(c, appErr.Code, appErr.Message, gin.H{"kind": appErr.Kind})
}

func BadRequest(c *gin.Context, message string, detail interface{}) {
	Error(c, http.StatusBadRequest, message, detail)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

func InternalServerError(c *gin.Context, message string, detail interface{}) {
	Error(c, http.StatusInternalServerError, message, detail)
}
