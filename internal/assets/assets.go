package assets

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"

	"github.com/znapfile/edge-gateway/internal/config"
)

// Collaborator serves every request the API surface does not claim.
type Collaborator interface {
	Serve(c *fiber.Ctx) error
}

// New selects a collaborator implementation from config.
func New(cfg config.AssetsConfig) (Collaborator, error) {
	switch cfg.Mode {
	case "dir":
		return NewDirServer(cfg.Dir), nil
	case "upstream":
		return NewUpstreamServer(cfg.UpstreamURL), nil
	default:
		return nil, fmt.Errorf("unknown assets mode %q", cfg.Mode)
	}
}

// DirServer serves a local build directory with SPA fallback.
type DirServer struct {
	root string
}

// NewDirServer builds a directory-backed collaborator.
func NewDirServer(root string) *DirServer {
	return &DirServer{root: root}
}

// Serve answers with the matching file, falling back to index.html so
// client-side routes resolve.
func (s *DirServer) Serve(c *fiber.Ctx) error {
	// Clean against the virtual root so ".." cannot escape the directory.
	reqPath := path.Clean("/" + c.Path())
	full := filepath.Join(s.root, filepath.FromSlash(reqPath))

	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		return c.SendFile(full)
	}

	index := filepath.Join(s.root, "index.html")
	if _, err := os.Stat(index); err == nil {
		return c.SendFile(index)
	}
	return c.Status(fiber.StatusNotFound).SendString("asset not found")
}

// UpstreamServer proxies unmodified requests to an origin server.
type UpstreamServer struct {
	base string
}

// NewUpstreamServer builds a proxying collaborator.
func NewUpstreamServer(base string) *UpstreamServer {
	return &UpstreamServer{base: strings.TrimRight(base, "/")}
}

// Serve forwards the request as-is to the upstream origin.
func (s *UpstreamServer) Serve(c *fiber.Ctx) error {
	return proxy.Do(c, s.base+c.OriginalURL())
}
