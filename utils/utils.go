package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePublicCode returns a short stable identifier for use in course
// URLs, distinct from the internal numeric id.
func GeneratePublicCode() string {
	id := uuid.New().String()
	return "crs-" + strings.Split(id, "-")[0] + strings.Split(id, "-")[1]
}
