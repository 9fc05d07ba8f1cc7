// Package remotelog talks to the remote append-only tabular log: a
// spreadsheet-style HTTPS API in which every completion toggle becomes
// one appended row.
//
// The remote log is the durable system of record; the local completion
// map is a derived, possibly stale, cache. Rows are strictly ordered
// by request arrival on the server, so correctness derives purely from
// append order and the log never needs compaction.
package remotelog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Hosted provider endpoints. Overridable for tests and self-hosted
// deployments via ClientConfig.
const (
	DefaultDriveBaseURL  = "https://www.googleapis.com/drive/v3"
	DefaultSheetsBaseURL = "https://sheets.googleapis.com/v4"
	DefaultLogTitle      = "Polymath Protocol Data"
)

// logSheetName is the single sheet holding the append-only log.
const logSheetName = "Logs"

// HeaderFields is the 4-column header row written when a log is
// provisioned. Row order below the header is append order.
var HeaderFields = []string{"Date", "HabitID", "Value", "Timestamp"}

// Row is one remote log entry: an ordered 4-tuple in append order.
// Value is the literal cell text "TRUE" or "FALSE".
type Row struct {
	Date      string
	HabitID   string
	Value     string
	Timestamp string
}

// ClientConfig holds the options for NewClient. Zero-value fields get
// the hosted defaults.
type ClientConfig struct {
	DriveBaseURL  string
	SheetsBaseURL string
	LogTitle      string
	HTTPClient    *http.Client
	Logger        *slog.Logger
}

// Client issues bearer-token authorized requests against the provider.
// It is stateless: the resolved log id is cached by the caller in the
// local snapshot store, not here.
type Client struct {
	driveBaseURL  string
	sheetsBaseURL string
	logTitle      string
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewClient creates a remote log client.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		driveBaseURL:  cfg.DriveBaseURL,
		sheetsBaseURL: cfg.SheetsBaseURL,
		logTitle:      cfg.LogTitle,
		httpClient:    cfg.HTTPClient,
		logger:        cfg.Logger,
	}
	if c.driveBaseURL == "" {
		c.driveBaseURL = DefaultDriveBaseURL
	}
	if c.sheetsBaseURL == "" {
		c.sheetsBaseURL = DefaultSheetsBaseURL
	}
	if c.logTitle == "" {
		c.logTitle = DefaultLogTitle
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// LocateOrCreateLog searches the provider for the uniquely-named log
// resource owned by the authenticated principal and returns its id.
// Zero matches provisions a new log with a single "Logs" sheet and the
// header row; one or more matches takes the first returned, with no
// further disambiguation.
//
// Errors here are hard failures: the caller must not proceed to append
// against an unconfirmed log id.
func (c *Client) LocateOrCreateLog(ctx context.Context, token string) (string, error) {
	id, found, err := c.searchLog(ctx, token)
	if err != nil {
		return "", err
	}
	if found {
		c.logger.Debug("remote log located", "log_id", id)
		return id, nil
	}

	id, err = c.createLog(ctx, token)
	if err != nil {
		return "", err
	}
	c.logger.Info("remote log provisioned", "log_id", id, "title", c.logTitle)
	return id, nil
}

// AppendRow appends one row at the end of the log sheet. Best-effort:
// callers treat failure as non-fatal and never retry.
func (c *Client) AppendRow(ctx context.Context, token, logID string, fields []string) error {
	if logID == "" {
		return NewNoLogIDError()
	}

	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s:append?valueInputOption=USER_ENTERED",
		c.sheetsBaseURL, url.PathEscape(logID), url.PathEscape(logSheetName+"!A:D"))

	body, err := json.Marshal(map[string]any{"values": [][]string{fields}})
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, endpoint, token, body)
	if err != nil {
		return &ProviderError{Code: ErrCodeAppendFailed, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return providerError(ErrCodeAppendFailed, "append rejected", resp)
	}
	return nil
}

// LoadAll fetches every row after the header, in provider order
// (append order). Short rows are padded so callers always see four
// fields.
func (c *Client) LoadAll(ctx context.Context, token, logID string) ([]Row, error) {
	if logID == "" {
		return nil, NewNoLogIDError()
	}

	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		c.sheetsBaseURL, url.PathEscape(logID), url.PathEscape(logSheetName+"!A2:D"))

	resp, err := c.do(ctx, http.MethodGet, endpoint, token, nil)
	if err != nil {
		return nil, &ProviderError{Code: ErrCodeLoadFailed, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, providerError(ErrCodeLoadFailed, "load rejected", resp)
	}

	var payload struct {
		Values [][]string `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &ProviderError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("decode response: %v", err)}
	}

	rows := make([]Row, 0, len(payload.Values))
	for _, cells := range payload.Values {
		var padded [4]string
		copy(padded[:], cells)
		rows = append(rows, Row{
			Date:      padded[0],
			HabitID:   padded[1],
			Value:     padded[2],
			Timestamp: padded[3],
		})
	}
	c.logger.Debug("remote log loaded", "rows", len(rows))
	return rows, nil
}

// searchLog queries the provider for a non-trashed spreadsheet with
// the exact log title.
func (c *Client) searchLog(ctx context.Context, token string) (string, bool, error) {
	q := fmt.Sprintf("name='%s' and mimeType='application/vnd.google-apps.spreadsheet' and trashed=false", c.logTitle)
	endpoint := fmt.Sprintf("%s/files?q=%s", c.driveBaseURL, url.QueryEscape(q))

	resp, err := c.do(ctx, http.MethodGet, endpoint, token, nil)
	if err != nil {
		return "", false, &ProviderError{Code: ErrCodeSearchFailed, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", false, providerError(ErrCodeSearchFailed, "search rejected", resp)
	}

	var payload struct {
		Files []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, &ProviderError{Code: ErrCodeSearchFailed, Message: fmt.Sprintf("decode response: %v", err)}
	}

	if len(payload.Files) == 0 {
		return "", false, nil
	}
	// One or more matches: take the first returned deterministically.
	return payload.Files[0].ID, true, nil
}

// createLog provisions a new spreadsheet with one "Logs" sheet and
// writes the header row.
func (c *Client) createLog(ctx context.Context, token string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"properties": map[string]any{"title": c.logTitle},
		"sheets": []map[string]any{
			{"properties": map[string]any{"title": logSheetName}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create log: %w", err)
	}

	endpoint := c.sheetsBaseURL + "/spreadsheets"
	resp, err := c.do(ctx, http.MethodPost, endpoint, token, body)
	if err != nil {
		return "", &ProviderError{Code: ErrCodeCreateFailed, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", providerError(ErrCodeCreateFailed, "create rejected", resp)
	}

	var payload struct {
		SpreadsheetID string `json:"spreadsheetId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &ProviderError{Code: ErrCodeCreateFailed, Message: fmt.Sprintf("decode response: %v", err)}
	}
	if payload.SpreadsheetID == "" {
		return "", &ProviderError{Code: ErrCodeCreateFailed, Message: "provider returned no spreadsheet id"}
	}

	// The header row is part of provisioning: a log without it is
	// unconfirmed, so a header failure is a hard failure too.
	if err := c.AppendRow(ctx, token, payload.SpreadsheetID, HeaderFields); err != nil {
		return "", &ProviderError{Code: ErrCodeCreateFailed, Message: fmt.Sprintf("write header row: %v", err)}
	}

	return payload.SpreadsheetID, nil
}

// do issues a bearer-token authorized request.
func (c *Client) do(ctx context.Context, method, endpoint, token string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

// providerError builds a ProviderError carrying the response body.
func providerError(code ProviderErrorCode, message string, resp *http.Response) *ProviderError {
	// Cap the body: provider error payloads are small, and an HTML
	// proxy error page should not balloon the log line.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &ProviderError{
		Code:       code,
		Message:    message,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}
