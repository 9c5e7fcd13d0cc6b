package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/entities"
)

func TestBedCounter_MonotonicPerCompany(t *testing.T) {
	counter := entities.NewBedCounter(31)

	assert.Equal(t, 31, counter.Next("ACME Hospital"))
	assert.Equal(t, 32, counter.Next("ACME Hospital"))

	// A second company gets its own sequence from the same start
	assert.Equal(t, 31, counter.Next("Beta Clinic"))
	assert.Equal(t, 33, counter.Next("ACME Hospital"))
}

func TestBedCounter_StartClampedToOne(t *testing.T) {
	counter := entities.NewBedCounter(0)
	assert.Equal(t, 1, counter.Next("ACME Hospital"))
}
