package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxRequestBody = 1 << 20

type Handler struct {
	service       *Service
	exposeDetails bool
	logger        *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		service:       service,
		exposeDetails: !service.cfg.IsProduction(),
		logger:        log,
	}
}

// RegisterRoutes wires the generation endpoint.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/generate", h.HandleGenerate).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/generate", h.HandleGenerate).Methods(http.MethodPost, http.MethodOptions)
}

// HandleGenerate - POST /api/generate
// {prompt, apiKey} -> {videoUrl, message} | {error, details?}
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	// main.go's CORS middleware answers preflight first; this covers mounting without it.
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	// 잘못된 JSON 도 필드 누락과 같은 400 으로 처리
	var req GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		h.logger.Warn("⚠️  [Bridge] Invalid request body", zap.Error(err))
		req = GenerateRequest{}
	}

	result, err := h.service.Generate(r.Context(), req.Prompt, req.APIKey)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		VideoURL: result.VideoURL,
		Message:  SuccessMessage,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var be *Error
	if !errors.As(err, &be) {
		be = Classify(err)
	}

	body := ErrorResponse{Error: be.Message}
	if h.exposeDetails && be.Status == http.StatusInternalServerError && be.Cause != nil {
		body.Details = fmt.Sprintf("%+v", be.Cause)
	}
	writeJSON(w, be.Status, body)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
