package files

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Info describes a stored upload. Path points at the timestamp-prefixed
// copy on disk; Name keeps the client's original filename.
type Info struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Type    string `json:"type"`
	SavedAs string `json:"saved_as"`
}

var allowedExtensions = map[string]bool{
	"txt":  true,
	"rtf":  true,
	"pdf":  true,
	"docx": true,
	"xlsx": true,
	"xls":  true,
}

// Handler saves and deletes uploaded files under a single directory.
type Handler struct {
	dir string
}

func NewHandler(dir string) (*Handler, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Handler{dir: dir}, nil
}

// Allowed reports whether the filename carries a supported extension.
func Allowed(filename string) bool {
	ext := Ext(filename)
	return ext != "" && allowedExtensions[ext]
}

// Ext returns the lowercased extension without the leading dot.
func Ext(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.TrimPrefix(ext, ".")
}

// Save copies the uploaded stream to disk under a timestamp-prefixed name
// so concurrent uploads of the same file never collide on path.
func (h *Handler) Save(src io.Reader, originalName string) (*Info, error) {
	base := sanitize(originalName)
	savedAs := time.Now().Format("20060102_150405") + "_" + base
	dstPath := filepath.Join(h.dir, savedAs)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	size, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err != nil {
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("write upload: %w", err)
	}
	if closeErr != nil {
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("write upload: %w", closeErr)
	}

	fileType := Ext(base)
	if fileType == "" {
		fileType = "unknown"
	}

	return &Info{
		Name:    base,
		Path:    dstPath,
		Size:    size,
		Type:    fileType,
		SavedAs: savedAs,
	}, nil
}

// Delete removes a stored file, logging instead of failing on error
// (deletion runs on error paths where the original failure matters more).
func (h *Handler) Delete(path string) bool {
	if path == "" {
		return false
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}
	if err := os.Remove(path); err != nil {
		log.Printf("failed to delete %s: %v", path, err)
		return false
	}
	return true
}

// sanitize strips directory components and characters unsafe for filenames.
func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var sb strings.Builder
	for _, r := range name {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			sb.WriteRune('_')
		default:
			sb.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(sb.String())
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "upload"
	}
	return cleaned
}
