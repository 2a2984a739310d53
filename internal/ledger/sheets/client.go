// Package sheets implements the ledger.Client interface against the Google
// Sheets values API. The sheet is a plain grid with a header row followed by
// one row per submitted phrase.
package sheets

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/jugaadu/internal/ledger"
)

// headerLocalPhrase is the first header cell written by the original sheet
// template. A matching first row is skipped when reading.
const headerLocalPhrase = "local phrase"

type Client struct {
	httpClient       *resty.Client
	spreadsheetID    string
	sheetName        string
	maxRetryAttempts uint
}

func NewClient(baseURL, token, spreadsheetID, sheetName string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+token)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		spreadsheetID:    spreadsheetID,
		sheetName:        sheetName,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// ValueRange mirrors the Sheets API request/response body for a cell range.
type ValueRange struct {
	Range          string     `json:"range,omitempty"`
	MajorDimension string     `json:"majorDimension,omitempty"`
	Values         [][]string `json:"values"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// FetchRows implements the ledger.Client interface
func (client *Client) FetchRows(ctx context.Context) ([]ledger.Row, error) {
	var result []ledger.Row
	if err := retry.Do(
		func() error {
			rows, err := client.fetchRows(ctx)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = rows
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}
	return result, nil
}

func (client *Client) fetchRows(ctx context.Context) ([]ledger.Row, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetResult(&ValueRange{}).
		Get(fmt.Sprintf("/%s/values/%s", client.spreadsheetID, url.PathEscape(client.sheetName)))
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ValueRange)
	if responseBody == nil {
		return nil, fmt.Errorf("empty response body: %s", response.String())
	}

	var rows []ledger.Row
	for i, cells := range responseBody.Values {
		if len(cells) < 2 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(cells[0]), headerLocalPhrase) {
			continue
		}
		row := ledger.Row{
			LocalPhrase:    cells[0],
			StandardPhrase: cells[1],
		}
		if len(cells) > 2 {
			row.Timestamp = cells[2]
		}
		if len(cells) > 3 {
			row.Location = cells[3]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow implements the ledger.Client interface
func (client *Client) AppendRow(ctx context.Context, row ledger.Row) error {
	return retry.Do(
		func() error {
			if err := client.appendRow(ctx, row); err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

func (client *Client) appendRow(ctx context.Context, row ledger.Row) error {
	requestBody := ValueRange{
		Values: [][]string{{row.LocalPhrase, row.StandardPhrase, row.Timestamp, row.Location}},
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetQueryParam("valueInputOption", "RAW").
		Post(fmt.Sprintf("/%s/values/%s:append", client.spreadsheetID, url.PathEscape(client.sheetName)))
	if err != nil {
		return fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	return nil
}
