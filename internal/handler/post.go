package handler

import (
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell/inkwell-go/internal/middleware"
	"github.com/inkwell/inkwell-go/internal/model"
	"github.com/inkwell/inkwell-go/internal/service"
	"github.com/inkwell/inkwell-go/internal/storage"
)

// maxUploadBytes caps the create-post form, image included.
const maxUploadBytes = 16 << 20 // 16MB

// PostHandler handles the post listing, post creation and upload
// serving routes.
type PostHandler struct {
	posts   *service.PostService
	uploads *storage.UploadStore
	render  *Renderer
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService, uploads *storage.UploadStore, render *Renderer) *PostHandler {
	return &PostHandler{posts: posts, uploads: uploads, render: render}
}

// Index handles GET /: all posts, newest first.
func (h *PostHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}

	user, _ := middleware.UserFromContext(r.Context())
	h.render.Render(w, http.StatusOK, "index", PageData{
		Title: "Home",
		Flash: popFlash(w, r),
		User:  user,
		Posts: posts,
	})
}

// ShowCreate handles GET /create_post.
func (h *PostHandler) ShowCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	h.render.Render(w, http.StatusOK, "create_post", PageData{
		Title: "New Post",
		Flash: popFlash(w, r),
		User:  user,
	})
}

// HandleCreate handles POST /create_post. The image is optional; when
// present it is stored under a sanitized name and the post keeps only
// that filename.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		setFlash(w, "Upload too large or malformed")
		http.Redirect(w, r, "/create_post", http.StatusFound)
		return
	}

	req := model.CreatePostRequest{
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}

	// Reject incomplete posts before the image touches disk, so a
	// failed submission cannot strand an orphaned upload.
	if req.Title == "" || req.Content == "" {
		setFlash(w, "Title and content are required")
		http.Redirect(w, r, "/create_post", http.StatusFound)
		return
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		stored, err := h.uploads.Save(file, header.Filename)
		if err != nil {
			serverError(w, err)
			return
		}
		req.ImageFilename = stored
	}

	if _, err := h.posts.Create(r.Context(), user, req); err != nil {
		if errors.Is(err, service.ErrTitleRequired) || errors.Is(err, service.ErrContentRequired) {
			setFlash(w, "Title and content are required")
			http.Redirect(w, r, "/create_post", http.StatusFound)
			return
		}
		serverError(w, err)
		return
	}

	setFlash(w, "Post created successfully!")
	http.Redirect(w, r, "/", http.StatusFound)
}

// ServeUpload handles GET /uploads/{filename}.
func (h *PostHandler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	path := h.uploads.Path(chi.URLParam(r, "filename"))

	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, path)
}
