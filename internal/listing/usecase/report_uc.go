package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.uber.org/zap"
)

const maxReasonLength = 2000

type ReportUsecase struct {
	d      Deps
	logger *logger.Logger
}

func NewReportUsecase(d Deps) *ReportUsecase {
	return &ReportUsecase{d: d, logger: d.log().Named("ReportUsecase")}
}

// FileReport flags a listing. Any viewer, guests included, may report.
func (uc *ReportUsecase) FileReport(ctx context.Context, viewer domain.Viewer, listingID, reason string) (*domain.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", domain.ErrInvalidInput)
	}
	if len(reason) > maxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", domain.ErrInvalidInput, maxReasonLength)
	}
	if _, err := uc.d.loadListing(ctx, listingID); err != nil {
		return nil, err
	}

	report := &domain.Report{
		ListingID: listingID,
		Reason:    reason,
		Status:    domain.ReportOpen,
		CreatedAt: uc.d.now(),
	}
	if err := uc.d.Reports.Create(ctx, report); err != nil {
		uc.logger.Error("Failed to create report", zap.Error(err), zap.String("listing_id", listingID))
		return nil, err
	}

	if uc.d.Metrics != nil {
		uc.d.Metrics.ReportsFiled.Inc()
	}
	uc.d.publish(ctx, uc.logger, SubjectReportFiled, map[string]interface{}{
		"report_id":     report.ID,
		"listing_id":    listingID,
		"authenticated": viewer.Authenticated,
		"at":            report.CreatedAt.Format(time.RFC3339Nano),
	})
	uc.logger.Info("Report filed", zap.String("report_id", report.ID), zap.String("listing_id", listingID))
	return report, nil
}

// ResolveReport closes a report as RESOLVED or DISMISSED. The listing is left untouched.
func (uc *ReportUsecase) ResolveReport(ctx context.Context, viewer domain.Viewer, reportID, target string) (*domain.Report, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	status, err := domain.ParseResolution(target)
	if err != nil {
		return nil, err
	}
	report, err := uc.d.Reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	now := uc.d.now()
	report.Status = status
	report.AdminID = viewer.AccountID
	report.ResolvedAt = &now
	if err := uc.d.Reports.Update(ctx, report); err != nil {
		uc.logger.Error("Failed to resolve report", zap.Error(err), zap.String("report_id", reportID))
		return nil, err
	}

	if uc.d.Metrics != nil {
		uc.d.Metrics.ReportsResolved.WithLabelValues(string(status)).Inc()
	}
	uc.d.publish(ctx, uc.logger, SubjectReportResolved, map[string]interface{}{
		"report_id":  report.ID,
		"listing_id": report.ListingID,
		"admin_id":   viewer.AccountID,
		"status":     string(status),
		"at":         now.Format(time.RFC3339Nano),
	})
	uc.logger.Info("Report resolved", zap.String("report_id", reportID), zap.String("status", string(status)))
	return report, nil
}

// ListReports returns reports for administrators, optionally filtered by status.
func (uc *ReportUsecase) ListReports(ctx context.Context, viewer domain.Viewer, status string, page domain.Page) ([]*domain.Report, int64, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, 0, err
	}
	f := domain.ReportFilter{}
	if status != "" {
		s, err := domain.ParseReportStatus(status)
		if err != nil {
			return nil, 0, err
		}
		f.Status = &s
	}
	f.Page, f.Limit = domain.NormalizePage(page.Page, page.Limit)
	return uc.d.Reports.FindByFilter(ctx, f)
}
