package v1

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resman-simple/apperrors"
)

// respondError maps a service error onto the REST boundary. Domain outcomes
// (not-found, conflict, validation) pass their message through; storage and
// other internal failures are logged and replaced with a generic message so
// backend detail never reaches the client.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		message = "Internal server error"
	}

	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}
