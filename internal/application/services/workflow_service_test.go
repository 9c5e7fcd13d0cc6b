package services_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/adapters/rowfile"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/adapters/spreadsheet"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/adapters/storage"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/application/services"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/Facilityonboardingautomation/backend/pkg/errors"
)

type stubClassifier struct {
	classified *entities.ClassifiedUnits
	err        error
	lastTable  string
}

func (s *stubClassifier) ClassifyServiceUnits(_ context.Context, table string) (*entities.ClassifiedUnits, error) {
	s.lastTable = table
	if s.err != nil {
		return nil, s.err
	}
	return s.classified, nil
}

type stubValidator struct {
	validation *entities.UserValidation
	err        error
	lastTable  string
}

func (s *stubValidator) ValidateUsers(_ context.Context, table string) (*entities.UserValidation, error) {
	s.lastTable = table
	if s.err != nil {
		return nil, s.err
	}
	return s.validation, nil
}

func newWorkflowService(t *testing.T, classifier *stubClassifier, validator *stubValidator, remote string) (*services.WorkflowService, string) {
	t.Helper()
	scratch := t.TempDir()
	svc := services.NewWorkflowService(
		services.NewSkeletonService(),
		services.NewHierarchyService(),
		services.NewUserService(),
		classifier,
		validator,
		storage.NewLocalStore(remote),
		rowfile.NewCSVSink(),
		spreadsheet.NewReader(),
		nil,
		scratch,
	)
	return svc, scratch
}

func errorType(t *testing.T, err error) apperrors.ErrorType {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Type
}

const serviceUnitsPayload = `[{
	"company": "ACME Hospital",
	"warehouse": "ACME Hospital - AH",
	"bedstart": 31,
	"outpatient": {"opd": true},
	"inpatient": {"female_ward": 2}
}]`

func TestWorkflowService_ServiceUnitsRun(t *testing.T) {
	classifier := &stubClassifier{classified: &entities.ClassifiedUnits{
		ParentServiceUnits: []entities.ParentUnit{{
			ServiceUnit:       "Outpatient Service Unit - AH",
			Company:           "ACME Hospital",
			ParentServiceUnit: "All Healthcare Service Units - AH",
			Type:              "Outpatient",
		}},
		OutpatientUnits: []entities.ClassifiedUnit{{
			ServiceUnit:       "Opd",
			Company:           "ACME Hospital",
			ServiceUnitType:   "Outpatient Service Unit",
			Warehouse:         "ACME Hospital - AH",
			ParentServiceUnit: "Outpatient Service Unit - AH",
		}},
		InpatientUnits: []entities.ClassifiedUnit{{
			ServiceUnit:       "Female Ward",
			Company:           "ACME Hospital",
			ServiceUnitType:   "Inpatient Service Unit",
			Warehouse:         "ACME Hospital - AH",
			ParentServiceUnit: "Inpatient Service Unit - AH",
			Beds:              2,
		}},
	}}

	remote := t.TempDir()
	svc, scratch := newWorkflowService(t, classifier, &stubValidator{}, remote)

	result, err := svc.Run(context.Background(), &services.WorkflowRequest{
		Payload:      serviceUnitsPayload,
		WorkflowType: services.WorkflowTypeServiceUnits,
		FolderID:     "run-1",
	})
	require.NoError(t, err)
	require.Len(t, result.FilesGenerated, 3)

	filePattern := regexp.MustCompile(`^(parent_service_units|outpatient_service_units|inpatient_service_units)_[0-9a-f-]{36}\.csv$`)
	for _, name := range result.FilesGenerated {
		assert.Regexp(t, filePattern, name)

		uploaded, err := os.ReadFile(filepath.Join(remote, "run-1", name))
		require.NoError(t, err)
		assert.NotEmpty(t, uploaded)
	}

	// The classifier saw the expanded skeleton, not the raw payload.
	assert.Contains(t, classifier.lastTable, "Opd")
	assert.Contains(t, classifier.lastTable, "Female Ward")

	// Bed numbering started from the configured bedstart.
	inpatientName := result.FilesGenerated[2]
	content, err := os.ReadFile(filepath.Join(remote, "run-1", inpatientName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Beds-0031")
	assert.Contains(t, string(content), "Beds-0032")

	// The scratch run directory is removed after the run.
	_, err = os.Stat(filepath.Join(scratch, "run-1"))
	assert.True(t, os.IsNotExist(err))
}

func TestWorkflowService_ServiceUnitsErrors(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		classifier *stubClassifier
		wantType   apperrors.ErrorType
		wantMsg    string
	}{
		{
			name:       "malformed payload",
			payload:    "{not json",
			classifier: &stubClassifier{},
			wantType:   apperrors.ErrorTypeValidation,
			wantMsg:    "invalid service units payload",
		},
		{
			name:       "no units selected",
			payload:    `[{"company": "ACME", "warehouse": "ACME - A"}]`,
			classifier: &stubClassifier{},
			wantType:   apperrors.ErrorTypeValidation,
			wantMsg:    "no service units selected",
		},
		{
			name:       "classifier failure",
			payload:    serviceUnitsPayload,
			classifier: &stubClassifier{err: errors.New("model unavailable")},
			wantType:   apperrors.ErrorTypeExternal,
			wantMsg:    "classification failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newWorkflowService(t, tt.classifier, &stubValidator{}, t.TempDir())

			_, err := svc.Run(context.Background(), &services.WorkflowRequest{
				Payload:      tt.payload,
				WorkflowType: services.WorkflowTypeServiceUnits,
				FolderID:     "run-err",
			})
			require.Error(t, err)
			assert.Equal(t, tt.wantType, errorType(t, err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestWorkflowService_EmptyClassificationMeansNothingToUpload(t *testing.T) {
	classifier := &stubClassifier{classified: &entities.ClassifiedUnits{}}
	remote := t.TempDir()
	svc, scratch := newWorkflowService(t, classifier, &stubValidator{}, remote)

	result, err := svc.Run(context.Background(), &services.WorkflowRequest{
		Payload:      serviceUnitsPayload,
		WorkflowType: services.WorkflowTypeServiceUnits,
		FolderID:     "run-empty",
	})
	require.NoError(t, err)
	assert.Empty(t, result.FilesGenerated)

	// Nothing was uploaded and the scratch directory is gone.
	_, err = os.Stat(filepath.Join(remote, "run-empty"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(scratch, "run-empty"))
	assert.True(t, os.IsNotExist(err))
}

func TestWorkflowService_RequestValidation(t *testing.T) {
	svc, _ := newWorkflowService(t, &stubClassifier{}, &stubValidator{}, t.TempDir())

	tests := []struct {
		name string
		req  services.WorkflowRequest
	}{
		{"missing folder", services.WorkflowRequest{Payload: "{}", WorkflowType: services.WorkflowTypeUsers}},
		{"missing payload", services.WorkflowRequest{WorkflowType: services.WorkflowTypeUsers, FolderID: "f"}},
		{"unknown type", services.WorkflowRequest{Payload: "{}", WorkflowType: "billing", FolderID: "f"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Run(context.Background(), &tt.req)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrorTypeValidation, errorType(t, err))
		})
	}
}

func TestWorkflowService_UsersRun(t *testing.T) {
	remote := t.TempDir()
	roster := "First Name,Email,Role\nJane Doe,jane@example.com,Nurse\n"
	require.NoError(t, os.MkdirAll(filepath.Join(remote, "run-2"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(remote, "run-2", "roster.csv"), []byte(roster), 0o644))

	validator := &stubValidator{validation: &entities.UserValidation{
		ValidUsers: []entities.UserRecord{{
			FirstName:    "Jane Doe",
			Email:        "jane@example.com",
			ServiceUnits: []string{"Opd - AH"},
			Warehouses:   []string{"Main Facility - AH"},
			Company:      "ACME Hospital",
			Role:         "Nurse",
		}},
		Errors: []entities.UserValidationIssue{{RowIndex: 2, FirstName: "Bad Row", Issues: "missing email"}},
	}}

	svc, _ := newWorkflowService(t, &stubClassifier{}, validator, remote)

	result, err := svc.Run(context.Background(), &services.WorkflowRequest{
		Payload:      `{"file_name": "roster.csv"}`,
		WorkflowType: services.WorkflowTypeUsers,
		FolderID:     "run-2",
	})
	require.NoError(t, err)

	// One file per record type the single nurse produces.
	require.Len(t, result.FilesGenerated, 5)
	prefixes := make([]string, 0, len(result.FilesGenerated))
	for _, name := range result.FilesGenerated {
		idx := strings.LastIndex(name, "_")
		require.Greater(t, idx, 0)
		prefixes = append(prefixes, name[:idx])

		_, err := os.Stat(filepath.Join(remote, "run-2", name))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{
		"create_user",
		"create_employee",
		"create_healthcare_practitioner",
		"create_user_permission",
		"create_user_warehouse",
	}, prefixes)

	// The validator received the roster as CSV text.
	assert.Contains(t, validator.lastTable, "jane@example.com")
}

func TestWorkflowService_UsersErrors(t *testing.T) {
	t.Run("missing file name", func(t *testing.T) {
		svc, _ := newWorkflowService(t, &stubClassifier{}, &stubValidator{}, t.TempDir())
		_, err := svc.Run(context.Background(), &services.WorkflowRequest{
			Payload:      `{}`,
			WorkflowType: services.WorkflowTypeUsers,
			FolderID:     "run-3",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeValidation, errorType(t, err))
	})

	t.Run("roster not in storage", func(t *testing.T) {
		svc, _ := newWorkflowService(t, &stubClassifier{}, &stubValidator{}, t.TempDir())
		_, err := svc.Run(context.Background(), &services.WorkflowRequest{
			Payload:      `{"file_name": "missing.csv"}`,
			WorkflowType: services.WorkflowTypeUsers,
			FolderID:     "run-3",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeExternal, errorType(t, err))
	})

}

func TestWorkflowService_AllUsersRejectedMeansNothingToUpload(t *testing.T) {
	remote := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(remote, "run-3"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(remote, "run-3", "roster.csv"), []byte("Email\n"), 0o644))

	validator := &stubValidator{validation: &entities.UserValidation{
		Errors: []entities.UserValidationIssue{{RowIndex: 1, FirstName: "Bad Row", Issues: "missing email"}},
	}}
	svc, _ := newWorkflowService(t, &stubClassifier{}, validator, remote)

	result, err := svc.Run(context.Background(), &services.WorkflowRequest{
		Payload:      `{"file_name": "roster.csv"}`,
		WorkflowType: services.WorkflowTypeUsers,
		FolderID:     "run-3",
	})
	require.NoError(t, err)
	assert.Empty(t, result.FilesGenerated)
}
