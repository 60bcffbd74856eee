package sheetsimpl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/orwa-kh/syria-post-watch/internal/domain"
	"github.com/orwa-kh/syria-post-watch/internal/sheets"
	"github.com/orwa-kh/syria-post-watch/pkg/config"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"
	"github.com/orwa-kh/syria-post-watch/pkg/retry"
	"go.uber.org/fx"
)

const (
	// dedupWindow bounds how many recent rows are checked for a duplicate
	// URL. Older rows can still duplicate; this is cost control, not a
	// uniqueness guarantee.
	dedupWindow = 50

	// urlColumn is where LogRow.Values places the source URL.
	urlColumn = "B"

	appendMaxRetries = 2
	appendInterval   = time.Second

	newSheetRows = 1000
	newSheetCols = 26
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type SheetsImpl struct {
	api    api
	config *config.Config
	logger logger.Logger

	mu      sync.Mutex
	ensured map[string]bool
}

// New builds the production client against the Google Sheets API.
func New(opts Opts) (*SheetsImpl, error) {
	gapi, err := newGoogleAPI(context.Background(), opts.Config)
	if err != nil {
		return nil, err
	}
	return newWithAPI(gapi, opts.Config, opts.Logger), nil
}

func newWithAPI(a api, cfg *config.Config, log logger.Logger) *SheetsImpl {
	return &SheetsImpl{
		api:     a,
		config:  cfg,
		logger:  log.WithComponent("Sheets"),
		ensured: make(map[string]bool),
	}
}

var _ sheets.Client = (*SheetsImpl)(nil)

// resolveWorksheet maps the routing key to a worksheet title. The popup
// marker selects the manual sheet; everything else lands in the extension
// sheet.
func (s *SheetsImpl) resolveWorksheet(source string) string {
	if source == domain.SourcePopup {
		return s.config.Sheets.ManualSheet
	}
	return s.config.Sheets.ExtensionSheet
}

// ensureWorksheet creates the worksheet on first use and caches the result
// for the life of the process.
func (s *SheetsImpl) ensureWorksheet(ctx context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensured[title] {
		return nil
	}

	titles, err := s.api.SheetTitles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list worksheets: %w", err)
	}
	for _, t := range titles {
		if t == title {
			s.ensured[title] = true
			return nil
		}
	}

	s.logger.Info("Creating worksheet", "title", title)
	if err := s.api.AddSheet(ctx, title, newSheetRows, newSheetCols); err != nil {
		return fmt.Errorf("failed to create worksheet %q: %w", title, err)
	}
	s.ensured[title] = true
	return nil
}

// isDuplicate checks the candidate URL against the last dedupWindow values of
// the URL column.
func (s *SheetsImpl) isDuplicate(ctx context.Context, title, url string) (bool, error) {
	if url == "" {
		return false, nil
	}

	values, err := s.api.ColumnValues(ctx, title, urlColumn)
	if err != nil {
		return false, fmt.Errorf("failed to read url column: %w", err)
	}

	start := 0
	if len(values) > dedupWindow {
		start = len(values) - dedupWindow
	}
	for _, v := range values[start:] {
		if v == url {
			return true, nil
		}
	}
	return false, nil
}

// Append routes, dedups and appends. The dedup check and the append are not
// serialized across concurrent requests; two simultaneous submissions of the
// same URL can both land. That race is accepted.
func (s *SheetsImpl) Append(ctx context.Context, source string, row domain.LogRow) (sheets.Outcome, error) {
	title := s.resolveWorksheet(source)

	if err := s.ensureWorksheet(ctx, title); err != nil {
		return sheets.OutcomeAppended, err
	}

	dup, err := s.isDuplicate(ctx, title, row.URL)
	if err != nil {
		// A failed dedup read is not worth losing the row over.
		s.logger.Warn("Dedup check failed, appending anyway", "error", err)
	}
	if dup {
		s.logger.Info("Skipping duplicate URL", "worksheet", title, "url", row.URL)
		return sheets.OutcomeDeduped, nil
	}

	err = retry.DoConstant(ctx, s.logger, "sheets append", func() error {
		return s.api.AppendRow(ctx, title, row.Values())
	}, appendMaxRetries, appendInterval)
	if err != nil {
		return sheets.OutcomeAppended, fmt.Errorf("failed to append row to %q: %w", title, err)
	}

	s.logger.Info("Appended row", "worksheet", title, "label", row.Label)
	return sheets.OutcomeAppended, nil
}

// ColumnValues exposes raw column reads for the backfill tool.
func (s *SheetsImpl) ColumnValues(ctx context.Context, title, column string) ([]string, error) {
	return s.api.ColumnValues(ctx, title, column)
}

// UpdateRow exposes positional row updates for the backfill tool.
func (s *SheetsImpl) UpdateRow(ctx context.Context, title string, rowIndex int64, startColumn string, values []interface{}) error {
	return s.api.UpdateRow(ctx, title, rowIndex, startColumn, values)
}
