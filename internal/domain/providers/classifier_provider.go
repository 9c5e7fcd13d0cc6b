package providers

import (
	"context"
	"errors"

	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/entities"
)

// ErrClassifierEmptyResponse is returned when the model produced no usable
// text for a classification request.
var ErrClassifierEmptyResponse = errors.New("classifier returned an empty response")

// UnitClassifier turns the flattened skeleton table into the seven
// classified category arrays.
type UnitClassifier interface {
	ClassifyServiceUnits(ctx context.Context, table string) (*entities.ClassifiedUnits, error)
}

// UserValidator cleans and validates raw personnel rows, splitting them into
// valid records and rejected records.
type UserValidator interface {
	ValidateUsers(ctx context.Context, table string) (*entities.UserValidation, error)
}
