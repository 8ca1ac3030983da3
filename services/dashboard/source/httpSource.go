package source

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gaugeboard/gauge-dashboard/services/dashboard/common"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/tidwall/gjson"
)

var log = logger.GetOrCreate("source")

// targetsKey is the one top-level payload key that is not a reporting period
const targetsKey = "targets"

type httpSource struct {
	url         string
	bearerToken string
	client      *http.Client
}

// NewHTTPSource creates a source that GETs the complete metrics payload from the provided URL. The
// bearer token is optional; when set it is sent as an Authorization header.
func NewHTTPSource(url string, bearerToken string, timeout time.Duration) *httpSource {
	return &httpSource{
		url:         url,
		bearerToken: bearerToken,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchMetrics performs a single GET of the full metrics payload. It keeps no cache and does no
// retrying; the caller gets the payload exactly as delivered or one of the typed failures.
func (s *httpSource) FetchMetrics(ctx context.Context) (common.RawPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return common.RawPayload{}, &TransportError{Err: err}
	}
	if len(s.bearerToken) > 0 {
		req.Header.Set("Authorization", "Bearer "+s.bearerToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return common.RawPayload{}, &TransportError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug("metrics endpoint replied with a non-success status", "status", resp.StatusCode)
		return common.RawPayload{}, &ResponseError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return common.RawPayload{}, &TransportError{Err: err}
	}

	return decodePayload(body)
}

// decodePayload walks the top-level object: every key except "targets" is a period table mapping
// column names to numbers, "targets" maps target column names to numbers. Null or non-numeric cells
// count as absent data, not as a malformed body.
func decodePayload(body []byte) (common.RawPayload, error) {
	if !gjson.ValidBytes(body) {
		return common.RawPayload{}, &ParseError{Reason: "body is not valid JSON"}
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return common.RawPayload{}, &ParseError{Reason: "top-level JSON value is not an object"}
	}

	payload := common.RawPayload{
		Periods: make(map[string]map[string]float64),
		Targets: make(map[string]float64),
	}
	parsed.ForEach(func(key gjson.Result, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}

		if key.String() == targetsKey {
			value.ForEach(func(name gjson.Result, target gjson.Result) bool {
				if target.Type == gjson.Number {
					payload.Targets[name.String()] = target.Num
				}
				return true
			})
			return true
		}

		columns := make(map[string]float64)
		value.ForEach(func(name gjson.Result, cell gjson.Result) bool {
			if cell.Type == gjson.Number {
				columns[name.String()] = cell.Num
			}
			return true
		})
		payload.Periods[key.String()] = columns

		return true
	})

	return payload, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *httpSource) IsInterfaceNil() bool {
	return s == nil
}
