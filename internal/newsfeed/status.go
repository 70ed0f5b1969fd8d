package newsfeed

import "net/http"

// Outcome はニュースフィード取り込みの結果分類。メトリクスのラベルに使う。
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeDisabled     Outcome = "disabled"
	OutcomeBlocked      Outcome = "blocked"
	OutcomeRequestError Outcome = "request_error"
	// OutcomeUnavailable はフィードが存在しない、またはアクセスが拒否された（404/410/401/403）。
	OutcomeUnavailable Outcome = "unavailable"
	// OutcomeUpstreamError は一時的な障害（429/5xx）。
	OutcomeUpstreamError Outcome = "upstream_error"
	OutcomeTooLarge      Outcome = "too_large"
	OutcomeParseError    Outcome = "parse_error"
	OutcomeEmpty         Outcome = "empty"
	// OutcomeNotDetected はHTMLページにフィードへのリンクがなかった。
	OutcomeNotDetected Outcome = "not_detected"
)

// classifyStatus はHTTPステータスコードを取り込み結果に分類する。
// 200以外はすべて失敗として扱う。
func classifyStatus(statusCode int) Outcome {
	switch {
	case statusCode == http.StatusOK:
		return OutcomeOK
	case statusCode == http.StatusNotFound || statusCode == http.StatusGone:
		return OutcomeUnavailable
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return OutcomeUnavailable
	default:
		return OutcomeUpstreamError
	}
}
