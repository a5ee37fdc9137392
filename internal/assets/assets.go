package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	stdsync "sync"

	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/fogleman/gg"
)

const (
	placeholderSize   = 128
	placeholderRadius = 16
)

// Asset kinds with dedicated placeholder palettes. Unknown kinds still get
// a placeholder, just in the default grey.
var kindColors = map[string][3]float64{
	"champion":       {0.23, 0.35, 0.60},
	"item":           {0.55, 0.42, 0.16},
	"rune":           {0.30, 0.18, 0.48},
	"summoner-spell": {0.16, 0.45, 0.38},
}

var defaultColor = [3]float64{0.35, 0.35, 0.38}

// Service serves icon files from a local cache directory. On a miss it
// draws a labeled placeholder once and caches it, so the extension UI
// always gets an image back even before real assets are mirrored.
type Service struct {
	dir string
	log *logger.Logger
	mu  stdsync.Mutex
}

func NewService(dir string, log *logger.Logger) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset cache dir: %w", err)
	}
	return &Service{dir: dir, log: log}, nil
}

// Resolve returns the on-disk path for an asset, generating a placeholder
// when the file is not cached yet. kind and name come from the URL; both
// are validated against path traversal.
func (s *Service) Resolve(kind, name string) (string, error) {
	if !validSegment(kind) || !validSegment(name) {
		return "", fmt.Errorf("invalid asset reference %q/%q", kind, name)
	}

	if !strings.Contains(name, ".") {
		name += ".png"
	}
	path := filepath.Join(s.dir, kind, name)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	// Two requests for the same missing asset must not race the encoder.
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := s.drawPlaceholder(path, kind, name); err != nil {
		return "", fmt.Errorf("generate placeholder: %w", err)
	}
	s.log.Info("generated placeholder asset", "kind", kind, "name", name)
	return path, nil
}

// drawPlaceholder renders a rounded tile with the asset's initial letter.
func (s *Service) drawPlaceholder(path, kind, name string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	color, ok := kindColors[kind]
	if !ok {
		color = defaultColor
	}

	dc := gg.NewContext(placeholderSize, placeholderSize)
	dc.SetRGB(0.09, 0.09, 0.11)
	dc.Clear()

	dc.SetRGB(color[0], color[1], color[2])
	dc.DrawRoundedRectangle(4, 4, placeholderSize-8, placeholderSize-8, placeholderRadius)
	dc.Fill()

	label := initialOf(name)
	dc.SetRGB(0.95, 0.95, 0.95)
	dc.DrawStringAnchored(label, placeholderSize/2, placeholderSize/2, 0.5, 0.5)

	return dc.SavePNG(path)
}

func initialOf(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		return "?"
	}
	return strings.ToUpper(base[:1])
}

// validSegment rejects anything that could escape the cache directory.
func validSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\")
}
