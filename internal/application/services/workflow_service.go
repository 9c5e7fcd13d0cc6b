package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/entities"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/providers"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/Facilityonboardingautomation/backend/pkg/errors"
)

// WorkflowType selects which onboarding workflow a request runs.
type WorkflowType string

const (
	WorkflowTypeServiceUnits WorkflowType = "service_units"
	WorkflowTypeUsers        WorkflowType = "users"
)

// WorkflowRequest is one workflow run: an opaque JSON payload whose shape
// depends on the workflow type, and the storage folder the run reads from
// and writes to.
type WorkflowRequest struct {
	Payload      string       `json:"payload"`
	WorkflowType WorkflowType `json:"workflow_type"`
	FolderID     string       `json:"folder_id"`
}

// Validate checks the request fields before any work starts.
func (r *WorkflowRequest) Validate() error {
	if strings.TrimSpace(r.FolderID) == "" {
		return apperrors.NewValidationError("folder_id is required")
	}
	if strings.TrimSpace(r.Payload) == "" {
		return apperrors.NewValidationError("payload is required")
	}
	switch r.WorkflowType {
	case WorkflowTypeServiceUnits, WorkflowTypeUsers:
		return nil
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown workflow_type %q", r.WorkflowType))
	}
}

// WorkflowResult reports the files a run produced.
type WorkflowResult struct {
	FilesGenerated []string `json:"files_generated"`
}

// usersPayload is the payload shape of the users workflow.
type usersPayload struct {
	FileName string `json:"file_name"`
}

// WorkflowService orchestrates the onboarding workflows end to end:
// skeleton generation, model classification, row building, and file
// movement to object storage.
type WorkflowService struct {
	skeleton   *SkeletonService
	hierarchy  *HierarchyService
	users      *UserService
	classifier providers.UnitClassifier
	validator  providers.UserValidator
	store      providers.ObjectStore
	sink       providers.RowSink
	reader     providers.TableReader
	metrics    *observability.Metrics
	baseDir    string
}

// NewWorkflowService creates a new workflow orchestrator.
func NewWorkflowService(
	skeleton *SkeletonService,
	hierarchy *HierarchyService,
	users *UserService,
	classifier providers.UnitClassifier,
	validator providers.UserValidator,
	store providers.ObjectStore,
	sink providers.RowSink,
	reader providers.TableReader,
	metrics *observability.Metrics,
	baseDir string,
) *WorkflowService {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &WorkflowService{
		skeleton:   skeleton,
		hierarchy:  hierarchy,
		users:      users,
		classifier: classifier,
		validator:  validator,
		store:      store,
		sink:       sink,
		reader:     reader,
		metrics:    metrics,
		baseDir:    baseDir,
	}
}

// Run executes one workflow request inside a scratch directory that is
// removed when the run finishes, successful or not.
func (s *WorkflowService) Run(ctx context.Context, req *WorkflowRequest) (*WorkflowResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, "workflow.run")
	defer span.End()

	runDir := filepath.Join(s.baseDir, req.FolderID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, apperrors.NewInternalError("failed to create run directory", err)
	}
	defer func() {
		if err := os.RemoveAll(runDir); err != nil {
			log.Warn().Err(err).Str("dir", runDir).Msg("failed to clean up run directory")
		}
	}()

	start := time.Now()
	var result *WorkflowResult
	var err error

	switch req.WorkflowType {
	case WorkflowTypeServiceUnits:
		result, err = s.processServiceUnits(ctx, req.Payload, req.FolderID, runDir)
	case WorkflowTypeUsers:
		result, err = s.processUsers(ctx, req.Payload, req.FolderID, runDir)
	}

	if s.metrics != nil {
		observability.RecordWorkflowMetric(ctx, s.metrics, string(req.WorkflowType), err == nil, time.Since(start))
	}
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	log.Info().
		Str("workflow_type", string(req.WorkflowType)).
		Str("folder_id", req.FolderID).
		Int("files_generated", len(result.FilesGenerated)).
		Dur("duration", time.Since(start)).
		Msg("workflow completed")

	return result, nil
}

// processServiceUnits runs the service unit workflow: expand the facility
// configurations into a skeleton table, hand it to the classifier, rebuild
// the classified categories into the final row sets, and upload one file
// per non-empty category.
func (s *WorkflowService) processServiceUnits(ctx context.Context, payload, folderID, runDir string) (*WorkflowResult, error) {
	var configs []entities.FacilityConfig
	if err := json.Unmarshal([]byte(payload), &configs); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid service units payload: %v", err))
	}

	skeletonRows := s.skeleton.Expand(configs)
	if len(skeletonRows) == 0 {
		return nil, apperrors.NewValidationError("no service units selected in the payload")
	}

	rows := make([]*entities.Row, 0, len(skeletonRows))
	for i := range skeletonRows {
		rows = append(rows, skeletonRows[i].Row())
	}

	skeletonName := fmt.Sprintf("service_units_skeleton_%s.csv", strings.ReplaceAll(uuid.NewString(), "-", ""))
	skeletonPath, err := s.sink.Write(runDir, skeletonName, rows)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to write skeleton file", err)
	}

	table, err := os.ReadFile(skeletonPath)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read skeleton file", err)
	}

	classified, err := s.classifier.ClassifyServiceUnits(ctx, string(table))
	if err != nil {
		return nil, apperrors.NewExternalError("service unit classification failed", err)
	}
	if classified.Empty() {
		// Nothing to upload; an empty classification is a successful run
		// with no files, not a failure.
		log.Warn().Str("folder_id", folderID).Msg("classifier returned no service units")
		return &WorkflowResult{FilesGenerated: []string{}}, nil
	}

	counter := entities.NewBedCounter(bedStart(configs))
	files := s.hierarchy.BuildAll(classified, counter)

	generated := make([]string, 0, len(files))
	for _, category := range FileCategories {
		categoryRows := files[category]
		if len(categoryRows) == 0 {
			continue
		}
		filename := fmt.Sprintf("%s_%s.csv", category, uuid.NewString())
		if _, err := s.sink.Write(runDir, filename, categoryRows); err != nil {
			return nil, apperrors.NewInternalError(fmt.Sprintf("failed to write %s file", category), err)
		}
		generated = append(generated, filename)
	}

	if err := s.uploadFiles(ctx, runDir, folderID, generated); err != nil {
		return nil, err
	}

	return &WorkflowResult{FilesGenerated: generated}, nil
}

// processUsers runs the personnel workflow: download the uploaded roster,
// validate it through the model, and upload one file per non-empty user
// action.
func (s *WorkflowService) processUsers(ctx context.Context, payload, folderID, runDir string) (*WorkflowResult, error) {
	var input usersPayload
	if err := json.Unmarshal([]byte(payload), &input); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid users payload: %v", err))
	}
	if strings.TrimSpace(input.FileName) == "" {
		return nil, apperrors.NewValidationError("file_name is required in the users payload")
	}

	localPath := filepath.Join(runDir, input.FileName)
	objectKey := folderID + "/" + input.FileName
	if err := s.store.Download(ctx, objectKey, localPath); err != nil {
		return nil, apperrors.NewExternalError("failed to download roster file", err)
	}

	table, err := s.reader.ReadTable(localPath)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("failed to read roster file: %v", err))
	}

	validation, err := s.validator.ValidateUsers(ctx, table)
	if err != nil {
		return nil, apperrors.NewExternalError("user validation failed", err)
	}

	for _, issue := range validation.Errors {
		log.Warn().
			Int("row_index", issue.RowIndex).
			Str("name", issue.FirstName).
			Str("issues", issue.Issues).
			Msg("user rejected during validation")
	}
	if len(validation.ValidUsers) == 0 {
		// Every row was rejected; the issues are already logged above and
		// the run succeeds with nothing to upload.
		log.Warn().Str("folder_id", folderID).Int("rejected", len(validation.Errors)).Msg("no valid users in the roster")
		return &WorkflowResult{FilesGenerated: []string{}}, nil
	}

	actions := s.users.BuildAll(validation.ValidUsers)

	generated := make([]string, 0, len(actions))
	for _, action := range UserActions {
		actionRows := actions[action]
		if len(actionRows) == 0 {
			continue
		}
		filename := fmt.Sprintf("%s_%s.csv", action, uuid.NewString())
		if _, err := s.sink.Write(runDir, filename, actionRows); err != nil {
			return nil, apperrors.NewInternalError(fmt.Sprintf("failed to write %s file", action), err)
		}
		generated = append(generated, filename)
	}

	if err := s.uploadFiles(ctx, runDir, folderID, generated); err != nil {
		return nil, err
	}

	return &WorkflowResult{FilesGenerated: generated}, nil
}

func (s *WorkflowService) uploadFiles(ctx context.Context, runDir, folderID string, files []string) error {
	for _, file := range files {
		if err := s.store.Upload(ctx, filepath.Join(runDir, file), folderID+"/"+file); err != nil {
			return apperrors.NewExternalError(fmt.Sprintf("failed to upload %s", file), err)
		}
	}
	return nil
}

// bedStart picks the bed numbering start for the run: the first non-zero
// value across the facility configurations.
func bedStart(configs []entities.FacilityConfig) int {
	for i := range configs {
		if configs[i].BedStart > 0 {
			return configs[i].BedStart
		}
	}
	return 1
}
