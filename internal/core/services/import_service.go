package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/hoa_billing_app/internal/apperrors"
	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hoa_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hoa_billing_app/internal/core/ports/services"
	"github.com/SscSPs/hoa_billing_app/internal/middleware"
	"github.com/SscSPs/hoa_billing_app/internal/parsers"
	"github.com/SscSPs/hoa_billing_app/internal/utils/legacy"
)

// DefaultImportTxTimeout bounds one HOA transaction; large rosters need headroom.
const DefaultImportTxTimeout = 30 * time.Second

// importService drives batch imports: one transaction per HOA, HOAs in parallel.
type importService struct {
	BaseService
	runner        portsrepo.UnitOfWorkRunner
	decoder       *legacy.Decoder
	txTimeout     time.Duration
	maxConcurrent int

	apartments    *apartmentImporter
	charges       *chargeImporter
	notifications *notificationImporter
	payments      *paymentImporter
}

// ImportServiceOption configures the import service.
type ImportServiceOption func(*importService)

// WithTxTimeout sets the per-HOA transaction timeout.
func WithTxTimeout(d time.Duration) ImportServiceOption {
	return func(s *importService) {
		if d > 0 {
			s.txTimeout = d
		}
	}
}

// WithMaxConcurrentHOAs caps how many HOAs import at the same time. Zero means no cap.
func WithMaxConcurrentHOAs(n int) ImportServiceOption {
	return func(s *importService) {
		if n >= 0 {
			s.maxConcurrent = n
		}
	}
}

// WithDecoder overrides the legacy codepage decoder.
func WithDecoder(d *legacy.Decoder) ImportServiceOption {
	return func(s *importService) {
		if d != nil {
			s.decoder = d
		}
	}
}

// NewImportService creates the batch import orchestrator.
func NewImportService(runner portsrepo.UnitOfWorkRunner, opts ...ImportServiceOption) portssvc.ImportSvc {
	dec, _ := legacy.NewDecoder(legacy.DefaultCodepage)
	s := &importService{
		runner:        runner,
		decoder:       dec,
		txTimeout:     DefaultImportTxTimeout,
		apartments:    &apartmentImporter{},
		charges:       &chargeImporter{},
		notifications: &notificationImporter{},
		payments:      &paymentImporter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ImportSvc = (*importService)(nil)

// hoaOutcome is what one HOA task hands back to the orchestrator. Either
// result is set, or err explains why the HOA was not imported at all.
type hoaOutcome struct {
	hoaID  string
	result *domain.HOAImportResult
	err    error
}

// ImportBatch implements portssvc.ImportSvc.
func (s *importService) ImportBatch(ctx context.Context, files []domain.UploadedFile, opts domain.ImportOptions) domain.BatchImportResult {
	logger := s.GetLogger(ctx)
	start := time.Now()

	groups, fileErrs := GroupFiles(files)
	for _, fe := range fileErrs {
		logger.Warn("Rejected uploaded file", slog.String("file", fe.File), slog.String("error", fe.Message))
	}

	ids := sortedGroupIDs(groups)
	logger.Info("Starting batch import",
		slog.Int("files", len(files)),
		slog.Int("hoas", len(ids)),
		slog.Bool("clean_import", opts.CleanImport),
	)

	outcomes := make([]hoaOutcome, len(ids))
	var g errgroup.Group
	if s.maxConcurrent > 0 {
		g.SetLimit(s.maxConcurrent)
	}
	for i, id := range ids {
		group := groups[id]
		g.Go(func() error {
			outcomes[i] = s.importHOA(ctx, group)
			return nil
		})
	}
	_ = g.Wait()

	result := domain.BatchImportResult{
		CleanImport: opts.CleanImport,
		Results:     []domain.HOAImportResult{},
		Errors:      append([]domain.ImportError{}, fileErrs...),
	}
	for _, o := range outcomes {
		if o.err != nil {
			result.Errors = append(result.Errors, domain.ImportError{HOAID: o.hoaID, Message: o.err.Error()})
			continue
		}
		r := *o.result
		result.Results = append(result.Results, r)
		if r.Apartments.Total == 0 && len(r.Errors) > 0 {
			result.Errors = append(result.Errors, domain.ImportError{
				HOAID:   r.HOAID,
				Message: "import failed: " + strings.Join(r.Errors, "; "),
			})
		}
	}

	result.Success = len(result.Errors) == 0
	for _, r := range result.Results {
		if len(r.Errors) > 0 {
			result.Success = false
		}
	}

	logger.Info("Batch import finished",
		slog.Bool("success", result.Success),
		slog.Int("hoas_imported", len(result.Results)),
		slog.Int("errors", len(result.Errors)),
		slog.Duration("duration", time.Since(start)),
	)
	return result
}

// importHOA parses one HOA group and imports it inside a single transaction.
func (s *importService) importHOA(ctx context.Context, group *domain.FileGroup) (out hoaOutcome) {
	out.hoaID = group.HOAExternalID
	logger := s.GetLogger(ctx).With(slog.String("hoa_id", group.HOAExternalID))
	ctx = middleware.WithLogger(ctx, logger)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("HOA import panicked", slog.Any("panic", r))
			out = hoaOutcome{hoaID: group.HOAExternalID, err: fmt.Errorf("internal error while importing: %v", r)}
		}
	}()

	if group.Apartments == nil {
		logger.Warn("HOA upload has no apartments file")
		out.err = fmt.Errorf("%w: %s is required", apperrors.ErrMissingApartmentsFile, ApartmentsFileName)
		return out
	}

	parsed, err := parsers.ParseFileGroup(group, s.decoder, logger)
	if err != nil {
		logger.Error("Failed to parse HOA files", slog.String("error", err.Error()))
		out.err = fmt.Errorf("failed to parse files: %w", err)
		return out
	}
	if len(parsed.Apartments) == 0 {
		logger.Warn("Apartments file has no owner records", slog.Int("roster_lines", parsed.RosterLines))
		out.err = apperrors.ErrEmptyRoster
		return out
	}

	var res *domain.HOAImportResult
	err = s.runner.RunInTx(ctx, s.txTimeout, func(ctx context.Context, uow portsrepo.ImportUnitOfWork) error {
		var rerr error
		res, rerr = s.reconcile(ctx, uow, parsed)
		return rerr
	})
	if err != nil {
		msg := "transaction failed: " + err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			msg = fmt.Sprintf("transaction timed out after %s: %v", s.txTimeout, err)
		}
		logger.Error("HOA import rolled back", slog.String("error", err.Error()))
		out.result = &domain.HOAImportResult{HOAID: group.HOAExternalID, Errors: []string{msg}}
		return out
	}

	logger.Info("HOA import committed",
		slog.Int("apartments_created", res.Apartments.Created),
		slog.Int("apartments_updated", res.Apartments.Updated),
		slog.Int("apartments_deactivated", res.Apartments.Deleted),
		slog.Int("errors", len(res.Errors)),
	)
	out.result = res
	return out
}

// reconcile runs every importer of one HOA in order, sharing the apartment index.
func (s *importService) reconcile(ctx context.Context, uow portsrepo.ImportUnitOfWork, parsed *parsers.ParsedGroup) (*domain.HOAImportResult, error) {
	hoa, err := uow.UpsertHOA(ctx, parsed.HOAExternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert hoa: %w", err)
	}

	errs := &hoaErrors{}
	res := &domain.HOAImportResult{HOAID: parsed.HOAExternalID}

	aptStats, index, err := s.apartments.Import(ctx, uow, hoa.HOAID, parsed.Apartments, errs)
	if err != nil {
		return nil, err
	}
	res.Apartments = aptStats

	if parsed.HasCharges {
		st, err := s.charges.Import(ctx, uow, index, parsed.Charges, errs)
		if err != nil {
			return nil, err
		}
		res.Charges = &st
	}
	if parsed.HasNotifications {
		st, err := s.notifications.Import(ctx, uow, hoa.HOAID, index, parsed.Notifications, errs)
		if err != nil {
			return nil, err
		}
		res.Notifications = &st
	}
	if parsed.HasPayments {
		st, err := s.payments.Import(ctx, uow, index, parsed.Payments, errs)
		if err != nil {
			return nil, err
		}
		res.Payments = &st
	}

	res.Errors = errs.list()
	return res, nil
}
