package http

import (
	"context"

	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/domain/valueobject"
	"github.com/ruudy-sib/boxcheck/internal/port/primary"
	"github.com/ruudy-sib/boxcheck/internal/port/secondary"
)

// mockContainerService implements primary.ContainerService for testing.
// Check, Normalize and ComputeCheckDigit use the real value object logic.
type mockContainerService struct {
	submitErr error
	report    *entity.ImportReport
	reportErr error
	cancelErr error

	submitted   []*entity.ImportBatch
	reportIDs   []string
	processCall int
	checkCalls  int
	cancelIDs   []string
}

var _ primary.ContainerService = (*mockContainerService)(nil)

func (m *mockContainerService) Check(raw string) valueobject.Check {
	m.checkCalls++
	return valueobject.Diagnose(raw)
}

func (m *mockContainerService) Normalize(raw string) string {
	return valueobject.NormalizeContainerNumber(raw)
}

func (m *mockContainerService) ComputeCheckDigit(prefix string) (int, error) {
	return valueobject.ComputeCheckDigit(prefix)
}

func (m *mockContainerService) SubmitImport(_ context.Context, batch *entity.ImportBatch) error {
	m.submitted = append(m.submitted, batch)
	if m.submitErr != nil {
		return m.submitErr
	}
	if batch.ID == "" {
		batch.ID = "generated-1"
	}
	return nil
}

func (m *mockContainerService) ProcessDueImports(_ context.Context) error {
	m.processCall++
	return nil
}

func (m *mockContainerService) CancelImport(_ context.Context, batchID string) error {
	m.cancelIDs = append(m.cancelIDs, batchID)
	return m.cancelErr
}

func (m *mockContainerService) GetReport(_ context.Context, batchID string) (*entity.ImportReport, error) {
	m.reportIDs = append(m.reportIDs, batchID)
	return m.report, m.reportErr
}

// mockHealthCheck is a test double for health checks.
type mockHealthCheck struct {
	name string
	err  error
}

func (c mockHealthCheck) Name() string {
	return c.name
}

func (c mockHealthCheck) Check(_ context.Context) error {
	return c.err
}

// Compile-time interface assertion
var _ secondary.HealthChecker = mockHealthCheck{}

// toHealthCheckers converts test doubles to the port interface.
func toHealthCheckers(checks []mockHealthCheck) []secondary.HealthChecker {
	if len(checks) == 0 {
		return nil
	}
	result := make([]secondary.HealthChecker, len(checks))
	for i, c := range checks {
		result[i] = c
	}
	return result
}
