package llm

import (
	"encoding/json"
	"net/http"
)

// resolveModel maps a short alias to a vendor model id. Unknown names
// pass through so full ids can be configured directly.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

// checkContent applies the checks shared by every vendor to a finished
// completion: truncated structured output is rejected, then the schema is
// enforced.
func checkContent(req Request, content json.RawMessage, stopReason string) error {
	if req.Schema == nil {
		return nil
	}
	if stopReason == "max_tokens" {
		return &ErrMaxTokensExceeded{Content: content}
	}
	return ValidateJSON(req.Schema, content)
}

// statusError maps a vendor HTTP status onto the package error types.
func statusError(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
