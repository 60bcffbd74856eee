package sheetsimpl

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/orwa-kh/syria-post-watch/internal/domain"
	"github.com/orwa-kh/syria-post-watch/internal/sheets"
	"github.com/orwa-kh/syria-post-watch/pkg/config"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	titles        []string
	rows          map[string][][]interface{}
	addSheetCalls int
	titleCalls    int
	appendErrs    []error // popped per AppendRow call before appending
}

func newFakeAPI(titles ...string) *fakeAPI {
	return &fakeAPI{
		titles: titles,
		rows:   make(map[string][][]interface{}),
	}
}

func (f *fakeAPI) SheetTitles(context.Context) ([]string, error) {
	f.titleCalls++
	return f.titles, nil
}

func (f *fakeAPI) AddSheet(_ context.Context, title string, rows, cols int64) error {
	f.addSheetCalls++
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeAPI) ColumnValues(_ context.Context, title, column string) ([]string, error) {
	var values []string
	for _, row := range f.rows[title] {
		if len(row) > 1 {
			values = append(values, fmt.Sprint(row[1]))
		} else {
			values = append(values, "")
		}
	}
	return values, nil
}

func (f *fakeAPI) AppendRow(_ context.Context, title string, values []interface{}) error {
	if len(f.appendErrs) > 0 {
		err := f.appendErrs[0]
		f.appendErrs = f.appendErrs[1:]
		if err != nil {
			return err
		}
	}
	f.rows[title] = append(f.rows[title], values)
	return nil
}

func (f *fakeAPI) UpdateRow(_ context.Context, title string, rowIndex int64, startColumn string, values []interface{}) error {
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Sheets.ExtensionSheet = "Extension Reports"
	cfg.Sheets.ManualSheet = "Manual Reports"
	return cfg
}

func testRow(url string) domain.LogRow {
	return domain.LogRow{
		Timestamp: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		URL:       url,
		Text:      "some text",
		Label:     "Neutral",
		SourceTag: "extension",
	}
}

func newTestImpl(api api) *SheetsImpl {
	return newWithAPI(api, testConfig(), logger.New(logger.Opts{}))
}

func TestAppendRoutesBySource(t *testing.T) {
	api := newFakeAPI("Extension Reports", "Manual Reports")
	s := newTestImpl(api)

	_, err := s.Append(context.Background(), "popup", testRow("https://x.com/a/status/1"))
	require.NoError(t, err)
	_, err = s.Append(context.Background(), "extension", testRow("https://x.com/a/status/2"))
	require.NoError(t, err)
	_, err = s.Append(context.Background(), "anything-else", testRow("https://x.com/a/status/3"))
	require.NoError(t, err)

	require.Len(t, api.rows["Manual Reports"], 1)
	require.Len(t, api.rows["Extension Reports"], 2)
}

func TestAppendCreatesMissingWorksheetOnce(t *testing.T) {
	api := newFakeAPI() // spreadsheet has no worksheets yet
	s := newTestImpl(api)

	_, err := s.Append(context.Background(), "extension", testRow("https://x.com/a/status/1"))
	require.NoError(t, err)
	_, err = s.Append(context.Background(), "extension", testRow("https://x.com/a/status/2"))
	require.NoError(t, err)

	require.Equal(t, 1, api.addSheetCalls)
	// Cached after first resolution, so the sheet list is fetched once.
	require.Equal(t, 1, api.titleCalls)
}

func TestAppendDedupsWithinWindow(t *testing.T) {
	api := newFakeAPI("Extension Reports")
	s := newTestImpl(api)

	url := "https://x.com/a/status/1"
	outcome, err := s.Append(context.Background(), "extension", testRow(url))
	require.NoError(t, err)
	require.Equal(t, sheets.OutcomeAppended, outcome)

	outcome, err = s.Append(context.Background(), "extension", testRow(url))
	require.NoError(t, err)
	require.Equal(t, sheets.OutcomeDeduped, outcome)

	require.Len(t, api.rows["Extension Reports"], 1)
}

func TestAppendDuplicateOutsideWindow(t *testing.T) {
	api := newFakeAPI("Extension Reports")
	s := newTestImpl(api)

	url := "https://x.com/a/status/1"
	_, err := s.Append(context.Background(), "extension", testRow(url))
	require.NoError(t, err)

	// Scroll the window past the first occurrence.
	for i := 0; i < dedupWindow; i++ {
		_, err := s.Append(context.Background(), "extension",
			testRow(fmt.Sprintf("https://x.com/a/status/%d", 100+i)))
		require.NoError(t, err)
	}

	outcome, err := s.Append(context.Background(), "extension", testRow(url))
	require.NoError(t, err)
	require.Equal(t, sheets.OutcomeAppended, outcome)
	require.Len(t, api.rows["Extension Reports"], dedupWindow+2)
}

func TestAppendRetriesTransientFailure(t *testing.T) {
	api := newFakeAPI("Extension Reports")
	api.appendErrs = []error{errors.New("rate limited")}
	s := newTestImpl(api)

	outcome, err := s.Append(context.Background(), "extension", testRow("https://x.com/a/status/1"))
	require.NoError(t, err)
	require.Equal(t, sheets.OutcomeAppended, outcome)
	require.Len(t, api.rows["Extension Reports"], 1)
}

func TestAppendPermanentFailureReturnsError(t *testing.T) {
	api := newFakeAPI("Extension Reports")
	boom := errors.New("backend down")
	api.appendErrs = []error{boom, boom, boom}
	s := newTestImpl(api)

	_, err := s.Append(context.Background(), "extension", testRow("https://x.com/a/status/1"))
	require.Error(t, err)
	require.Empty(t, api.rows["Extension Reports"])
}

func TestAppendEmptyURLNeverDeduped(t *testing.T) {
	api := newFakeAPI("Extension Reports")
	s := newTestImpl(api)

	// Plain-text submissions have no URL; two of them must both land.
	_, err := s.Append(context.Background(), "extension", testRow(""))
	require.NoError(t, err)
	_, err = s.Append(context.Background(), "extension", testRow(""))
	require.NoError(t, err)

	require.Len(t, api.rows["Extension Reports"], 2)
}
