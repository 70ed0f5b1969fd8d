// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hitoshi/scholarpage/internal/model"
)

// ErrContentNotSeeded はprofile行が存在しない（seed未実行の）場合に返る。
var ErrContentNotSeeded = errors.New("content has not been seeded")

// ContentRepository はホームページコンテンツの永続化インターフェース。
type ContentRepository interface {
	// Load はコンテンツ全体を登録順で読み込む。
	// profile行が存在しない場合はErrContentNotSeededを返す。
	Load(ctx context.Context) (*model.Content, error)

	// Replace は既存のコンテンツをすべて削除し、指定のコンテンツで置き換える。
	// 削除と挿入は同一トランザクションで行う。
	Replace(ctx context.Context, c *model.Content) error
}

// TxBeginner はトランザクション開始用のインターフェース。
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
