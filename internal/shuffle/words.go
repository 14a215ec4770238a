package shuffle

// Word is a sequence of glyphs the animator can settle on.
type Word []rune

// NewWord splits s into glyphs.
func NewWord(s string) Word { return Word([]rune(s)) }

func (w Word) String() string { return string(w) }

// Strings returns each glyph as its own string, the shape frames are sent in.
func (w Word) Strings() []string {
	out := make([]string, len(w))
	for i, r := range w {
		out[i] = string(r)
	}
	return out
}

// DefaultWords are the vertical words shown beside the page: continuous
// evolution, creativity, innovation, skill, building the future, passion,
// growth and quality.
var DefaultWords = []Word{
	NewWord("継続的な進化"),
	NewWord("創造性"),
	NewWord("革新"),
	NewWord("技術"),
	NewWord("未来を築く"),
	NewWord("情熱"),
	NewWord("成長"),
	NewWord("品質"),
}

// DefaultPool is the filler glyph pool used while shuffling.
var DefaultPool = []rune(
	"創造性革新技術継続的な進化" +
		"未来を築く情熱成長挑戦協力" +
		"学習品質効率開発設計実装" +
		"最適化美学芸術完璧精神魂" +
		"心愛希望夢光力強速智慧知")
