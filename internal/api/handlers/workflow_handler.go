package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/application/services"
	apperrors "github.com/zatekoja/Facilityonboardingautomation/backend/pkg/errors"
)

// WorkflowHandler exposes the workflow processing endpoint.
type WorkflowHandler struct {
	service        *services.WorkflowService
	redisClient    *redislib.Client
	idempotencyTTL time.Duration
}

// NewWorkflowHandler creates a new workflow handler.
func NewWorkflowHandler(
	service *services.WorkflowService,
	redisClient *redislib.Client,
	idempotencyTTL time.Duration,
) *WorkflowHandler {
	if idempotencyTTL <= 0 {
		idempotencyTTL = 24 * time.Hour
	}
	return &WorkflowHandler{
		service:        service,
		redisClient:    redisClient,
		idempotencyTTL: idempotencyTTL,
	}
}

// ProcessWorkflow runs one onboarding workflow. Requests are deduplicated on
// folder_id so a retried upload does not run the same workflow twice.
func (h *WorkflowHandler) ProcessWorkflow(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		respondWithError(w, http.StatusServiceUnavailable, "workflow service not configured")
		return
	}

	var req services.WorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if duplicate := h.isDuplicate(r.Context(), req.FolderID); duplicate {
		respondWithJSON(w, http.StatusOK, map[string]string{
			"status":          "duplicate",
			"idempotency_key": req.FolderID,
		})
		return
	}

	result, err := h.service.Run(r.Context(), &req)
	if err != nil {
		log.Error().Err(err).
			Str("workflow_type", string(req.WorkflowType)).
			Str("folder_id", req.FolderID).
			Msg("workflow failed")
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "success",
		"message":         "Workflow processed successfully",
		"files_generated": result.FilesGenerated,
	})
}

func (h *WorkflowHandler) isDuplicate(ctx context.Context, folderID string) bool {
	key := strings.TrimSpace(folderID)
	if key == "" || h.redisClient == nil {
		return false
	}

	redisKey := "workflow_idem:" + key
	ok, err := h.redisClient.SetNX(ctx, redisKey, time.Now().UTC().Format(time.RFC3339Nano), h.idempotencyTTL).Result()
	if err != nil {
		log.Warn().Err(err).Msg("idempotency check failed")
		return false
	}
	return !ok
}

// statusForError maps application error types to HTTP status codes.
func statusForError(err error) int {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict
	case apperrors.ErrorTypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
