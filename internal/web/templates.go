package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// templatePatterns are the glob patterns parsed into the template set
var templatePatterns = []string{
	"templates/*.html",
	"templates/pages/*.html",
	"templates/fragments/*.html",
}

// Renderer parses and executes HTML templates. In dev mode it reads
// templates from disk and re-parses them when files change.
type Renderer struct {
	mu     sync.RWMutex
	tmpl   *template.Template
	fsys   fs.FS
	dir    string
	dev    bool
	logger *slog.Logger
}

// NewRenderer creates a renderer over the embedded template files.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{
		fsys:   templateFS,
		logger: logger,
	}
	if err := r.parse(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewDevRenderer creates a renderer that reads templates from the given
// directory. The directory must contain the templates/ tree.
func NewDevRenderer(dir string, logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{
		fsys:   os.DirFS(dir),
		dir:    dir,
		dev:    true,
		logger: logger,
	}
	if err := r.parse(); err != nil {
		return nil, err
	}
	return r, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"fmtClock": func(seconds int64) string {
			h := seconds / 3600
			m := (seconds % 3600) / 60
			s := seconds % 60
			return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
		},
		"fmtTime": func(t time.Time) string {
			return t.Local().Format("15:04:05")
		},
		"fmtDate": func(t time.Time) string {
			return t.Local().Format("2006-01-02")
		},
		"rfc3339": func(t time.Time) string {
			return t.UTC().Format(time.RFC3339)
		},
		"unixMillis": func(t time.Time) int64 {
			return t.UnixMilli()
		},
		"inputTime": func(t time.Time) string {
			return t.Local().Format("2006-01-02T15:04:05")
		},
		"deref": func(p *int64) int64 {
			if p == nil {
				return 0
			}
			return *p
		},
		"add": func(a, b int) int {
			return a + b
		},
	}
}

func (r *Renderer) parse() error {
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(r.fsys, templatePatterns...)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	r.mu.Lock()
	r.tmpl = tmpl
	r.mu.Unlock()
	return nil
}

// Render executes the named template into w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()

	return tmpl.ExecuteTemplate(w, name, data)
}

// Watch re-parses templates whenever a file under the template root
// changes. It blocks until stop is closed and is only used in dev mode.
func (r *Renderer) Watch(stop <-chan struct{}) error {
	if !r.dev {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create template watcher: %w", err)
	}
	defer watcher.Close()

	roots := []string{
		filepath.Join(r.dir, "templates"),
		filepath.Join(r.dir, "templates", "pages"),
		filepath.Join(r.dir, "templates", "fragments"),
	}
	for _, root := range roots {
		if err := watcher.Add(root); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
	}

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := r.parse(); err != nil {
				r.logger.Error("template reload failed", "file", event.Name, "error", err)
				continue
			}
			r.logger.Debug("templates reloaded", "file", event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("template watcher error", "error", err)
		}
	}
}
