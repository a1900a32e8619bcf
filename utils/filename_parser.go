package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var imageExtRegex = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|webp)$`)

// ParseImageFileName extracts the item id from an image file name.
// Images are named after the item they show: "golden-scorpion.PNG" -> "golden-scorpion".
func ParseImageFileName(filename string) (string, error) {
	name := strings.TrimSpace(filename)
	if !imageExtRegex.MatchString(name) {
		return "", fmt.Errorf("invalid image file name %q: expected .png, .jpg, .jpeg or .webp", filename)
	}

	id := strings.ToLower(strings.TrimSpace(imageExtRegex.ReplaceAllString(name, "")))
	if id == "" {
		return "", fmt.Errorf("invalid image file name %q: empty item id", filename)
	}
	return id, nil
}
