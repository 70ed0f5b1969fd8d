package theme

// Selector はアクティブなテーマを保持する状態機械。
// 状態はRegistryに登録されたプリセットIDのいずれかであり、それ以外の状態はない。
type Selector struct {
	registry *Registry
	active   string
}

// NewSelector は既定プリセット（宣言順で先頭）を初期状態とするSelectorを生成する。
func NewSelector(registry *Registry) *Selector {
	return &Selector{
		registry: registry,
		active:   registry.Default().ID,
	}
}

// Select はIDが有効なプリセットを指す場合にアクティブテーマを切り替える。
// 無効なIDは何もせずfalseを返す。
func (s *Selector) Select(id string) bool {
	if _, ok := s.registry.Lookup(id); !ok {
		return false
	}
	s.active = id
	return true
}

// Advance は宣言順で次のプリセットに切り替える。末尾の次は先頭に戻る。
func (s *Selector) Advance() {
	s.active = s.registry.next(s.active)
}

// ActiveID はアクティブなプリセットのIDを返す。
func (s *Selector) ActiveID() string {
	return s.active
}

// Active はアクティブなプリセットを返す。
func (s *Selector) Active() Preset {
	p, _ := s.registry.Lookup(s.active)
	return p
}

// Token はアクティブなプリセットからトークンの値を読み出す。
func (s *Selector) Token(t Token) string {
	return s.Active().Token(t)
}

// Presets は選択可能なプリセットを宣言順で返す。
func (s *Selector) Presets() []Preset {
	return s.registry.Presets()
}
