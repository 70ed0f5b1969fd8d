package theme

import "fmt"

// Registry は宣言順を保持したプリセットの集合。構築後は変更されない。
type Registry struct {
	presets []Preset
	index   map[string]int
}

// NewRegistry はプリセット一覧からRegistryを生成する。
// プリセットが空の場合、IDが重複する場合、トークン集合が揃っていない場合はエラーを返す。
func NewRegistry(presets []Preset) (*Registry, error) {
	if len(presets) == 0 {
		return nil, fmt.Errorf("theme registry requires at least one preset")
	}

	r := &Registry{
		presets: make([]Preset, 0, len(presets)),
		index:   make(map[string]int, len(presets)),
	}
	for _, p := range presets {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate preset id: %q", p.ID)
		}
		tokens := make(map[Token]string, len(p.Tokens))
		for k, v := range p.Tokens {
			tokens[k] = v
		}
		r.index[p.ID] = len(r.presets)
		r.presets = append(r.presets, Preset{ID: p.ID, Name: p.Name, Tokens: tokens})
	}
	return r, nil
}

// Default は宣言順で先頭のプリセットを返す。
func (r *Registry) Default() Preset {
	return r.presets[0]
}

// Lookup はIDに対応するプリセットを返す。
func (r *Registry) Lookup(id string) (Preset, bool) {
	i, ok := r.index[id]
	if !ok {
		return Preset{}, false
	}
	return r.presets[i], true
}

// Presets は宣言順のプリセット一覧を返す。
func (r *Registry) Presets() []Preset {
	out := make([]Preset, len(r.presets))
	copy(out, r.presets)
	return out
}

// Len はプリセット数を返す。
func (r *Registry) Len() int {
	return len(r.presets)
}

// next は宣言順で次のプリセットのIDを返す。末尾の次は先頭に戻る。
func (r *Registry) next(id string) string {
	i, ok := r.index[id]
	if !ok {
		return r.presets[0].ID
	}
	return r.presets[(i+1)%len(r.presets)].ID
}
