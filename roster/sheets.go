package roster

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetSource reads roster rows from a Google Sheets range. The first row of
// the range is the header; each later row becomes one Row keyed by header.
type SheetSource struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
}

// NewSheetSource creates the Sheets service. Pass option.WithCredentialsFile
// (or any other client option) for authentication.
func NewSheetSource(ctx context.Context, spreadsheetID, readRange string, opts ...option.ClientOption) (*SheetSource, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetSource{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}, nil
}

func (s *SheetSource) Fetch(ctx context.Context) ([]Row, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	return RowsFromValues(resp.Values), nil
}

// RowsFromValues converts sheet values (header row first) into rows.
// Cells past the header width keep an empty key so email scanning still sees them.
func RowsFromValues(values [][]interface{}) []Row {
	if len(values) == 0 {
		return []Row{}
	}

	header := make([]string, len(values[0]))
	for i, h := range values[0] {
		header[i] = stringify(h)
	}

	rows := make([]Row, 0, len(values)-1)
	for _, record := range values[1:] {
		row := make(Row, 0, len(record))
		for i, v := range record {
			key := ""
			if i < len(header) {
				key = header[i]
			}
			row = append(row, Cell{Key: key, Value: stringify(v)})
		}
		rows = append(rows, row)
	}
	return rows
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
