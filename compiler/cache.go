package compiler

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const irSuffix = ".ll"

// WriteIR stores the textual module ir under cacheDir in a directory
// keyed by a short content hash, and returns the artifact path. The
// write is serialized with a file lock so concurrent compilers sharing
// one cache do not clobber each other. Writing the same ir twice is a
// no-op.
func WriteIR(cacheDir, name, ir string) (string, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	lock := flock.New(filepath.Join(cacheDir, ".lock"))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("locking cache: %w", err)
	}
	defer lock.Unlock()

	sum := sha256.Sum256([]byte(ir))
	shortHash := hex.EncodeToString(sum[:])[:8]
	artifactDir := filepath.Join(cacheDir, shortHash)
	if err := os.MkdirAll(artifactDir, 0o755); err != nil {
		return "", fmt.Errorf("creating artifact dir: %w", err)
	}

	outPath := filepath.Join(artifactDir, name+irSuffix)
	if _, err := os.Stat(outPath); err == nil {
		return outPath, nil
	}
	if err := os.WriteFile(outPath, []byte(ir), 0o644); err != nil {
		return "", fmt.Errorf("writing ir artifact: %w", err)
	}
	return outPath, nil
}
