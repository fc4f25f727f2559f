package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON binds the request body and, on failure, writes the uniform
// validation envelope. Field names are rendered through the handler's
// label map; only the first error is reported.
func bindJSON(c *gin.Context, req any, labels map[string]string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondBindingError(c, err, labels)
		return false
	}
	return true
}

// bindQuery is bindJSON for query parameters.
func bindQuery(c *gin.Context, req any, labels map[string]string) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		respondBindingError(c, err, labels)
		return false
	}
	return true
}

func respondBindingError(c *gin.Context, err error, labels map[string]string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		label := labels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		respondFieldError(c, label, reasonFor(fe))
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"msg": "Unexpected error."})
}

// respondFieldError writes a validation failure tied to a single field.
func respondFieldError(c *gin.Context, label, reason string) {
	c.JSON(http.StatusBadRequest, gin.H{"msg": fmt.Sprintf("Invalid field '%s': %s", label, reason)})
}

// respondUnexpected hides provider and infrastructure failures behind a
// generic envelope; the cause is logged by the caller, never surfaced.
func respondUnexpected(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "Unexpected error."})
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", fe.Param())
	default:
		return "Invalid value."
	}
}
