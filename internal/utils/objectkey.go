package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename reduces a client-supplied filename to its base name and
// strips every character outside alphanumerics, dot, dash and underscore.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(filepath.Base(name), "")
}

// ObjectKey builds the storage key for an uploaded project file:
// project-<projectID>/<epochMillis>-<sanitizedName>. Files whose name
// sanitizes down to nothing get a generated one.
func ObjectKey(projectID uint64, now time.Time, originalName string) string {
	name := SanitizeFilename(originalName)
	if name == "" || name == "." || name == ".." {
		name = uuid.NewString()
	}
	return fmt.Sprintf("project-%d/%d-%s", projectID, now.UnixMilli(), name)
}
