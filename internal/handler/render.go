package handler

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/inkwell/inkwell-go/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"index", "signup", "login", "forgot_password", "reset_password", "create_post",
}

// PageData is the data envelope every template receives.
type PageData struct {
	Title string
	Flash string
	User  *model.User

	Posts []model.Post
	Token string
}

// Renderer executes the embedded page templates against the shared
// layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates once at startup.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page. Template failures surface as a generic
// server error; the cause goes to the log only.
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) {
	tmpl, ok := rd.pages[page]
	if !ok {
		slog.Error("unknown template", "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("render template", "page", page, "error", err)
	}
}

func serverError(w http.ResponseWriter, err error) {
	slog.Error("request failed", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
