package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BuildObjectName derives the storage name for an uploaded file:
// {unixMillis}-{uuid}-{sanitizedOriginalName}. The timestamp and UUID make
// collisions practically impossible while keeping a readable suffix, and both
// prefixes stay useful for substring lookup.
func BuildObjectName(originalName string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString(), SanitizeFilename(originalName))
}

// SanitizeFilename replaces every character outside [A-Za-z0-9.-] with an
// underscore.
func SanitizeFilename(name string) string {
	var result strings.Builder
	for _, char := range name {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') || char == '.' || char == '-' {
			result.WriteRune(char)
		} else {
			result.WriteRune('_')
		}
	}
	return result.String()
}
