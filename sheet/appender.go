package sheet

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Appender writes onboarding records to a Google Sheet, one row per
// verified member.
type Appender struct {
	service       *sheets.Service
	spreadsheetID string
	writeRange    string
}

// New creates an appender authenticated with the service-account
// credentials file at credentialsPath.
func New(ctx context.Context, credentialsPath, spreadsheetID, writeRange string) (*Appender, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Appender{
		service:       service,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
	}, nil
}

// AppendRow appends one row of values to the configured range
func (a *Appender) AppendRow(ctx context.Context, values []interface{}) error {
	body := &sheets.ValueRange{
		Values: [][]interface{}{values},
	}

	_, err := a.service.Spreadsheets.Values.
		Append(a.spreadsheetID, a.writeRange, body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			switch apiErr.Code {
			case 404:
				return fmt.Errorf("spreadsheet %s not found: %w", a.spreadsheetID, err)
			case 403:
				return fmt.Errorf("permission denied appending to spreadsheet %s: %w", a.spreadsheetID, err)
			}
		}
		return fmt.Errorf("failed to append row: %w", err)
	}
	return nil
}
