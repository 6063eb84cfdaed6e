package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	"github.com/SscSPs/workspace_dashboard/internal/core/services"
)

func newReportingFixture(t *testing.T) (*MockRemote, *services.SessionRegistry) {
	t.Helper()
	remote := new(MockRemote)
	remote.On("GetWorkspace", mock.Anything, "ws-hr").Return(teamWorkspace("ws-hr", domain.FocusHumanResources), nil)
	remote.On("GetWorkspace", mock.Anything, "ws-pm").Return(teamWorkspace("ws-pm", domain.FocusProjectManagement), nil)
	return remote, services.NewSessionRegistry(remote, remote, nil, nil, 3)
}

func TestRowBreakdown(t *testing.T) {
	remote, registry := newReportingFixture(t)
	remote.On("ListRows", mock.Anything, "ws-hr").Return([]domain.Row{
		{RowID: "r1", Data: map[string]any{"stage": "screen"}},
		{RowID: "r2", Data: map[string]any{"stage": "offer"}},
		{RowID: "r3", Data: map[string]any{"stage": "screen"}},
		{RowID: "r4", Data: map[string]any{}},
		{RowID: "r5", Data: map[string]any{"stage": ""}},
		{RowID: "r6", Data: map[string]any{"stage": "hired"}},
	}, nil).Once()

	svc := services.NewReportingService(registry, remote)
	report, err := svc.RowBreakdown(context.Background(), viewerID, "ws-hr", "stage")
	require.NoError(t, err)

	assert.Equal(t, 6, report.Total)
	require.Len(t, report.Buckets, 4)
	assert.Equal(t, "(empty)", report.Buckets[0].Value)
	assert.Equal(t, 2, report.Buckets[0].Count)
	assert.Equal(t, "screen", report.Buckets[1].Value)
	assert.True(t, decimal.RequireFromString("33.33").Equal(report.Buckets[1].Percent))
	assert.Equal(t, "hired", report.Buckets[2].Value)
	assert.Equal(t, "offer", report.Buckets[3].Value)
	assert.True(t, decimal.RequireFromString("16.67").Equal(report.Buckets[3].Percent))
}

func TestRowBreakdownNeedsColumn(t *testing.T) {
	remote, registry := newReportingFixture(t)
	svc := services.NewReportingService(registry, remote)

	_, err := svc.RowBreakdown(context.Background(), viewerID, "ws-hr", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	remote.AssertNotCalled(t, "ListRows", mock.Anything, mock.Anything)
}

func TestProjectProgress(t *testing.T) {
	remote, registry := newReportingFixture(t)
	remote.On("ListRows", mock.Anything, "ws-pm").Return([]domain.Row{
		{RowID: "t1", Data: map[string]any{"status": domain.StatusDone}},
		{RowID: "t2", Data: map[string]any{"status": domain.StatusInProgress}},
		{RowID: "t3", Data: map[string]any{}},
	}, nil).Once()

	svc := services.NewReportingService(registry, remote)
	progress, err := svc.ProjectProgress(context.Background(), editorID, "ws-pm")
	require.NoError(t, err)

	assert.Equal(t, 3, progress.Total)
	assert.Equal(t, 1, progress.Done)
	assert.True(t, decimal.RequireFromString("33.33").Equal(progress.CompletionRate))
	for _, b := range progress.ByStatus {
		assert.NotEqual(t, "(empty)", b.Value)
	}
}

func TestProjectProgressEmptyBoard(t *testing.T) {
	remote, registry := newReportingFixture(t)
	remote.On("ListRows", mock.Anything, "ws-pm").Return([]domain.Row{}, nil).Once()

	svc := services.NewReportingService(registry, remote)
	progress, err := svc.ProjectProgress(context.Background(), editorID, "ws-pm")
	require.NoError(t, err)
	assert.True(t, progress.CompletionRate.IsZero())
	assert.Empty(t, progress.ByStatus)
}

func TestProjectProgressRejectsHRWorkspace(t *testing.T) {
	remote, registry := newReportingFixture(t)
	svc := services.NewReportingService(registry, remote)

	_, err := svc.ProjectProgress(context.Background(), editorID, "ws-hr")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
