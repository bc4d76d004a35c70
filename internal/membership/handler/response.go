package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents error response structure matching the API contract.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorResponse creates error response matching the API contract.
func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

// notFoundResponse creates 404 error response.
func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, "NOT_FOUND", message, http.StatusNotFound)
}

// conflictWithTeam renders an error body carrying the team that caused the
// rejection under the given key, so clients can show which team blocks the join.
func conflictWithTeam(c *gin.Context, code, message, teamKey, teamID, teamName string, status int) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			teamKey: gin.H{
				"id":   teamID,
				"name": teamName,
			},
		},
	})
}
