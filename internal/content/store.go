package content

import (
	"errors"
	"fmt"

	"github.com/hitoshi/scholarpage/internal/model"
)

// ErrPublicationNotFound は指定IDの論文が存在しない場合に返される。
var ErrPublicationNotFound = errors.New("publication not found")

// Store は読み込み済みコンテンツを保持する不変のストア。
// アクセサはすべてコピーを返すため、呼び出し側の変更はストアに影響しない。
type Store struct {
	content model.Content
	byID    map[int]int
}

// NewStore は検証済みのContentからStoreを生成する。
func NewStore(c model.Content) (*Store, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	s := &Store{
		content: clone(c),
		byID:    make(map[int]int, len(c.Publications)),
	}
	for i, p := range s.content.Publications {
		s.byID[p.ID] = i
	}
	return s, nil
}

// Validate はContentの不変条件を検証する。
// 違反はすべてまとめて1つのエラーとして返す。
func Validate(c model.Content) error {
	var errs []error

	if c.Profile.Name == "" {
		errs = append(errs, errors.New("profile name is empty"))
	}

	seen := make(map[int]bool, len(c.Publications))
	for _, p := range c.Publications {
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("duplicate publication id: %d", p.ID))
		}
		seen[p.ID] = true
		if !p.Type.Valid() {
			errs = append(errs, fmt.Errorf("publication %d has unknown type %q", p.ID, p.Type))
		}
	}

	for i, s := range c.Services {
		if s.Category == "" {
			errs = append(errs, fmt.Errorf("service record %d has empty category", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid content: %w", errors.Join(errs...))
	}
	return nil
}

// Profile はプロフィールを返す。
func (s *Store) Profile() model.Profile {
	p := s.content.Profile
	p.Affiliations = append([]string(nil), p.Affiliations...)
	return p
}

// News は記述順のニュース一覧を返す。
func (s *Store) News() []model.NewsItem {
	return append([]model.NewsItem{}, s.content.News...)
}

// Publications は記述順の論文一覧を返す。
func (s *Store) Publications() []model.Publication {
	return append([]model.Publication{}, s.content.Publications...)
}

// Publication はIDに対応する論文を返す。
// 存在しない場合はErrPublicationNotFoundを返す。
func (s *Store) Publication(id int) (model.Publication, error) {
	i, ok := s.byID[id]
	if !ok {
		return model.Publication{}, fmt.Errorf("publication %d: %w", id, ErrPublicationNotFound)
	}
	return s.content.Publications[i], nil
}

// Services は学術サービス一覧を返す。
func (s *Store) Services() []model.ServiceRecord {
	out := make([]model.ServiceRecord, len(s.content.Services))
	for i, r := range s.content.Services {
		out[i] = model.ServiceRecord{
			Category: r.Category,
			Items:    append([]string(nil), r.Items...),
		}
	}
	return out
}

// Content はストア全体のコピーを返す。
func (s *Store) Content() model.Content {
	return clone(s.content)
}

func clone(c model.Content) model.Content {
	out := model.Content{
		Profile:      c.Profile,
		News:         append([]model.NewsItem{}, c.News...),
		Publications: append([]model.Publication{}, c.Publications...),
		Services:     make([]model.ServiceRecord, len(c.Services)),
	}
	out.Profile.Affiliations = append([]string(nil), c.Profile.Affiliations...)
	for i, r := range c.Services {
		out.Services[i] = model.ServiceRecord{
			Category: r.Category,
			Items:    append([]string(nil), r.Items...),
		}
	}
	return out
}
