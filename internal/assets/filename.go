package assets

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"strings"
)

// GenerateFilename returns a collision-resistant target name for an uploaded
// file, keeping the original extension when it looks sane.
func GenerateFilename(original string) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(original))
	if len(ext) > 8 || strings.ContainsAny(ext, "/\\") {
		ext = ""
	}
	return id + ext, nil
}

func generateID() (string, error) {
	var uuid [16]byte
	if _, err := rand.Read(uuid[:]); err != nil {
		return "", err
	}

	// Set version (4) and variant bits according to RFC 4122
	uuid[6] = (uuid[6] & 0x0f) | 0x40 // Version 4
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // Variant is 10

	// Format as UUID string: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
	return fmt.Sprintf("%x-%x-%x-%x-%x",
		uuid[0:4],
		uuid[4:6],
		uuid[6:8],
		uuid[8:10],
		uuid[10:16]), nil
}
