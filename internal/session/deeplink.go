package session

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// DataParam is the single query parameter carrying the URL-encoded
// JSON-serialized LoginInfo on the deep link.
const DataParam = "data"

// ParseError indicates a deep-link payload that could not be decoded
// into a LoginInfo. Consumers must treat it as a hard failure.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deep link parse error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("deep link parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EncodeDeepLink serializes info as the data parameter of a
// custom-scheme deep link, e.g. authtemplate://auth?data=%7B...%7D.
func EncodeDeepLink(scheme string, info *LoginInfo) (string, error) {
	payload, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("failed to serialize login info: %w", err)
	}
	return fmt.Sprintf("%s?%s=%s", scheme, DataParam, url.QueryEscape(string(payload))), nil
}

// DecodeDeepLink extracts and deserializes the LoginInfo payload from a
// deep-link URL. It performs no side effects; installing the session is
// the caller's job.
func DecodeDeepLink(rawURL string) (*LoginInfo, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ParseError{Reason: "malformed URL", Err: err}
	}

	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, &ParseError{Reason: "malformed query string", Err: err}
	}

	data := query.Get(DataParam)
	if data == "" {
		return nil, &ParseError{Reason: "missing data parameter"}
	}

	var info LoginInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return nil, &ParseError{Reason: "malformed login payload", Err: err}
	}

	return &info, nil
}
