// Package sheets wraps the Google Sheets v4 API for the import/export
// adapter.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type Client struct {
	service *sheets.Service
}

// NewClient builds a Sheets client from a service-account credentials file.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("sheets credentials file is not configured")
	}

	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{service: service}, nil
}

// ReadRange returns all cell values in the range, header row included.
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("values get: %w", err)
	}
	return resp.Values, nil
}

// WriteRange clears the destination range and writes values starting at its
// top-left cell.
func (c *Client) WriteRange(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) error {
	if _, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, writeRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("values clear: %w", err)
	}

	body := &sheets.ValueRange{Values: values}
	if _, err := c.service.Spreadsheets.Values.Update(spreadsheetID, writeRange, body).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("values update: %w", err)
	}
	return nil
}
