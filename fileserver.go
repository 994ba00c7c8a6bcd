package gemd

import (
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Optional dotfiles read from the content root.
const (
	headerFile = ".header.gmi"
	footerFile = ".footer.gmi"
	robotsFile = ".robots.txt"
)

// FileHandler serves a content root over Gemini: directories render as
// gemtext listings, regular files are served with a MIME type guessed from
// the extension. Root is fixed at construction and acts as a sandbox
// boundary; no request can resolve outside it.
//
// Files and directories whose name starts with '.' are hidden from
// listings but still fetchable by exact path.
type FileHandler struct {
	Root   string
	Logger zerolog.Logger
}

// NewFileHandler returns a FileHandler serving root.
func NewFileHandler(root string) *FileHandler {
	return &FileHandler{Root: root, Logger: zerolog.Nop()}
}

func (h *FileHandler) Handle(r Request) Response {
	// url.Parse already percent-decoded the path component.
	return h.resolve(r.URL.Path)
}

// resolve maps a decoded request path to a response. Every filesystem
// error is converted to a response variant here; none propagate.
func (h *FileHandler) resolve(decodedPath string) Response {
	rel := decodedPath
	switch {
	case rel == "" || rel == "/":
		rel = "."
	case strings.HasPrefix(rel, "/"):
		rel = rel[1:]
	}

	clean := path.Clean(rel)
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		// Traversal out of the root is indistinguishable from a missing
		// resource, so the path's existence is never confirmed.
		return NotFound("Not found")
	}

	if clean == "robots.txt" {
		bytes, err := os.ReadFile(filepath.Join(h.Root, robotsFile))
		if err != nil {
			return Success("text/plain", nil)
		}
		return Success("text/plain", bytes)
	}

	full := filepath.Join(h.Root, filepath.FromSlash(clean))

	info, err := os.Stat(full)
	switch {
	case err != nil:
		return NotFound("Not found")
	case info.IsDir():
		return h.listDirectory(rel, clean, full)
	case info.Mode().IsRegular():
		return h.serveFile(full)
	default:
		return NotFound("Not found")
	}
}

// listDirectory renders a directory as a gemtext page: optional header,
// a path heading, one link line per visible entry, optional footer.
func (h *FileHandler) listDirectory(display, clean, full string) Response {
	entries, err := os.ReadDir(full)
	if err != nil {
		h.Logger.Error().Err(err).Str("path", full).Msg("failed to read directory")
		return CGIError(fmt.Sprintf("Failed to generate directory list : %v", err))
	}

	header := h.readTemplate(headerFile)
	footer := h.readTemplate(footerFile)

	links := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		target := name
		if clean != "." {
			target = path.Join(clean, name)
		}
		links = append(links, fmt.Sprintf("=> %s %s\n", linkEscape(target), name))
	}

	// Ascending sort of the rendered lines, then reversed: listings read
	// in descending order. Consumers depend on this exact ordering.
	sort.Strings(links)
	var content strings.Builder
	for i := len(links) - 1; i >= 0; i-- {
		content.WriteString(links[i])
	}

	body := fmt.Sprintf("%s\n### Path: [ %s ]\n%s\n%s", header, display, content.String(), footer)
	return Success("text/gemini", []byte(body))
}

func (h *FileHandler) serveFile(full string) Response {
	bytes, err := os.ReadFile(full)
	if err != nil {
		h.Logger.Error().Err(err).Str("path", full).Msg("failed to read file")
		return CGIError(fmt.Sprintf("Failed to read file : %v", err))
	}

	mimeType := mime.TypeByExtension(filepath.Ext(full))
	if mimeType == "" {
		mimeType = "text/gemini"
	} else if base, _, err := mime.ParseMediaType(mimeType); err == nil {
		// The stdlib table appends a charset parameter to text types; the
		// meta field carries the bare type.
		mimeType = base
	}
	return Success(mimeType, bytes)
}

// readTemplate reads an optional gemtext fragment from the root; a missing
// or unreadable file degrades to the empty string.
func (h *FileHandler) readTemplate(name string) string {
	bytes, err := os.ReadFile(filepath.Join(h.Root, name))
	if err != nil {
		return ""
	}
	return string(bytes)
}
