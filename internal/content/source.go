// Package content はホームページのコンテンツストアと読み込み元を提供する。
package content

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hitoshi/scholarpage/internal/model"
)

//go:embed default_content.yaml
var defaultContent []byte

// Source はコンテンツの読み込み元のインターフェース。
// YAMLファイルとPostgreSQLの2種類の実装がある。
type Source interface {
	Load(ctx context.Context) (*model.Content, error)
}

// FileSource はYAMLファイルからコンテンツを読み込む。
// Pathが空の場合はバイナリに埋め込まれた既定コンテンツを使用する。
type FileSource struct {
	Path string
}

// NewFileSource はFileSourceを生成する。
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load はYAMLをパースしてContentを返す。未知のキーはエラーとする。
func (s *FileSource) Load(ctx context.Context) (*model.Content, error) {
	data := defaultContent
	if s.Path != "" {
		b, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read content file: %w", err)
		}
		data = b
	}
	return Decode(data)
}

// Decode はYAMLバイト列をContentにデコードする。
func Decode(data []byte) (*model.Content, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c model.Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}
	return &c, nil
}
