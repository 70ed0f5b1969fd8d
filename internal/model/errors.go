package model

import (
	"fmt"
	"net/http"
)

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: content, validation, theme, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodePublicationNotFound = "PUBLICATION_NOT_FOUND"
	ErrCodeInvalidFilter       = "INVALID_FILTER"
	ErrCodeInvalidID           = "INVALID_ID"
	ErrCodeThemeNotFound       = "THEME_NOT_FOUND"
	ErrCodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	ErrCodePublicationNotFound: http.StatusNotFound,
	ErrCodeThemeNotFound:       http.StatusNotFound,
	ErrCodeInvalidFilter:       http.StatusBadRequest,
	ErrCodeInvalidID:           http.StatusBadRequest,
	ErrCodeRateLimitExceeded:   http.StatusTooManyRequests,
}

// Status はエラーコードに対応するHTTPステータスを返す。未知のコードは500。
func (e *APIError) Status() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NewPublicationNotFoundError は論文未検出エラーを生成する。
func NewPublicationNotFoundError(id int) *APIError {
	return &APIError{
		Code:     ErrCodePublicationNotFound,
		Message:  fmt.Sprintf("指定された論文が見つかりません: %d", id),
		Category: "content",
		Action:   "論文IDを確認してください。",
	}
}

// NewInvalidIDError はIDの形式が不正な場合のエラーを生成する。
func NewInvalidIDError(raw string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  fmt.Sprintf("無効なIDです: %s", raw),
		Category: "validation",
		Action:   "IDには整数を指定してください。",
	}
}

// NewInvalidFilterError は無効なフィルタエラーを生成する。
func NewInvalidFilterError(filter string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidFilter,
		Message:  fmt.Sprintf("無効なフィルタです: %s", filter),
		Category: "validation",
		Action:   "フィルタには All、Conference、Journal、Preprint、Software のいずれかを指定してください。",
	}
}

// NewThemeNotFoundError はテーマ未検出エラーを生成する。
func NewThemeNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeThemeNotFound,
		Message:  fmt.Sprintf("指定されたテーマが見つかりません: %s", id),
		Category: "theme",
		Action:   "GET /api/themes でテーマ一覧を確認してください。",
	}
}

// NewRateLimitExceededError はレート制限超過エラーを生成する。
func NewRateLimitExceededError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimitExceeded,
		Message:  "リクエストが多すぎます。",
		Category: "system",
		Action:   "Retry-Afterヘッダーの秒数だけ待ってから再度お試しください。",
	}
}

// NewInternalError は内部エラーを生成する。詳細はログにだけ残す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
