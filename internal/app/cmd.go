package app

import "strings"

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	// CommandServe はHTTPサーバーとしてホームページを配信する。
	CommandServe Command = "serve"
	// CommandMigrate はコンテンツ用テーブルのマイグレーションを適用する。
	CommandMigrate Command = "migrate"
	// CommandSeed はYAMLコンテンツをデータベースに書き込む。
	CommandSeed Command = "seed"
	// CommandHealthcheck は起動中のサーバーの/healthを確認する。
	// distrolessイメージにはcurlがないためDockerのHEALTHCHECKから使う。
	CommandHealthcheck Command = "healthcheck"
)

var commands = map[string]Command{
	"serve":       CommandServe,
	"migrate":     CommandMigrate,
	"seed":        CommandSeed,
	"healthcheck": CommandHealthcheck,
}

// ParseCommand は先頭の引数からサブコマンドを解析する。
// 大文字小文字と前後の空白は区別しない。
// 引数がない場合と未知のコマンドの場合はCommandServeを返し、後者ではokがfalseになる。
func ParseCommand(args []string) (cmd Command, ok bool) {
	if len(args) == 0 {
		return CommandServe, true
	}
	if cmd, ok := commands[strings.ToLower(strings.TrimSpace(args[0]))]; ok {
		return cmd, true
	}
	return CommandServe, false
}
