// Package backup persists the original document before it is replaced.
package backup

import (
	"fmt"
	"os"
)

// maxAttempts bounds the search for a free numbered backup name.
const maxAttempts = 1000

// Write stores content at path+suffix. If that name is taken, numbered
// variants (path+suffix.1, .2, ...) are tried so an earlier backup is never
// overwritten. Returns the path the backup was written to.
func Write(path, suffix string, content []byte) (string, error) {
	base := path + suffix

	candidate := base
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			break
		}
		if i > maxAttempts {
			return "", fmt.Errorf("no free backup name for %s after %d attempts", base, maxAttempts)
		}
		candidate = fmt.Sprintf("%s.%d", base, i)
	}

	if err := os.WriteFile(candidate, content, 0644); err != nil {
		return "", fmt.Errorf("writing backup %s: %w", candidate, err)
	}
	return candidate, nil
}
