package web

import (
	"embed"
	"net/http"

	"github.com/gorilla/mux"
)

//go:embed static/index.html
var static embed.FS

// Handler serves the browser page that submits prompts to /api/generate.
type Handler struct {
	page []byte
}

func NewHandler() *Handler {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		// embedded at build time
		panic(err)
	}
	return &Handler{page: page}
}

// RegisterRoutes wires the page at "/".
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods(http.MethodGet)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(h.page)
}
