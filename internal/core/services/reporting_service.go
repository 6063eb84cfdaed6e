package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	"github.com/SscSPs/workspace_dashboard/internal/core/permissions"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
)

const (
	emptyBucket      = "(empty)"
	percentPrecision = 2
)

var hundred = decimal.NewFromInt(100)

// reportingService implements the ReportingSvc interface
type reportingService struct {
	authorizer
	repo portsrepo.TableRepository
}

// NewReportingService creates a new reporting service with the provided dependencies
func NewReportingService(sessions *SessionRegistry, repo portsrepo.TableRepository) portssvc.ReportingSvc {
	return &reportingService{
		authorizer: authorizer{sessions: sessions},
		repo:       repo,
	}
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// RowBreakdown counts rows per value of column
func (s *reportingService) RowBreakdown(ctx context.Context, userID, workspaceID, column string) (*domain.Breakdown, error) {
	if column == "" {
		return nil, apperrors.NewValidationError("column is required")
	}
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListRows(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load rows for report", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return &domain.Breakdown{
		WorkspaceID: workspaceID,
		Column:      column,
		Total:       len(rows),
		Buckets:     bucketize(rows, column),
	}, nil
}

// ProjectProgress reports the done share of a PM board
func (s *reportingService) ProjectProgress(ctx context.Context, userID, workspaceID string) (*domain.ProjectProgress, error) {
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView)
	if err != nil {
		return nil, err
	}
	if err := requireProjectFocus(access.workspace); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListRows(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load rows for progress", slog.String("workspace_id", workspaceID))
		return nil, err
	}

	for i := range rows {
		// rows without a status sit in the first lane of the board
		if rowStatus(rows[i]) == domain.StatusTodo {
			rows[i].Data = domain.MergeData(rows[i].Data, map[string]any{domain.StatusField: domain.StatusTodo})
		}
	}
	progress := &domain.ProjectProgress{
		WorkspaceID:    workspaceID,
		Total:          len(rows),
		ByStatus:       bucketize(rows, domain.StatusField),
		CompletionRate: decimal.Zero,
	}
	for _, b := range progress.ByStatus {
		if b.Value == domain.StatusDone {
			progress.Done = b.Count
		}
	}
	progress.CompletionRate = percentOf(progress.Done, progress.Total)
	return progress, nil
}

// bucketize groups rows by the string form of column, largest bucket first.
func bucketize(rows []domain.Row, column string) []domain.BreakdownBucket {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[cellLabel(row.Data[column])]++
	}
	buckets := make([]domain.BreakdownBucket, 0, len(counts))
	for value, count := range counts {
		buckets = append(buckets, domain.BreakdownBucket{
			Value:   value,
			Count:   count,
			Percent: percentOf(count, len(rows)),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Value < buckets[j].Value
	})
	return buckets
}

func cellLabel(v any) string {
	switch t := v.(type) {
	case nil:
		return emptyBucket
	case string:
		if t == "" {
			return emptyBucket
		}
		return t
	case bool:
		if t {
			return "yes"
		}
		return "no"
	default:
		return fmt.Sprint(t)
	}
}

func percentOf(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(percentPrecision)
}
