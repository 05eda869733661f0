package parser

import (
	"slices"

	"stepcheck/internal/token"
)

// expectSet накапливает всё, что парсер пробовал на текущей позиции.
// Сбрасывается при каждом advance, поэтому на ошибке содержит объединение
// ожиданий всех активных продукций.
type expectSet struct {
	kinds uint32 // bit per token.Kind
	words []string
}

func (s *expectSet) addKind(k token.Kind) {
	s.kinds |= 1 << k
}

func (s *expectSet) addWord(w string) {
	if !slices.Contains(s.words, w) {
		s.words = append(s.words, w)
	}
}

func (s *expectSet) reset() {
	s.kinds = 0
	s.words = s.words[:0]
}

// names returns the sorted, unique terminal names.
func (s *expectSet) names() []string {
	out := make([]string, 0, len(s.words)+8)
	out = append(out, s.words...)
	for k := token.Invalid; k <= token.Star; k++ {
		if s.kinds&(1<<k) != 0 {
			out = append(out, k.GrammarName())
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// valueStart lists the kinds that may begin a parameter value.
var valueStart = []token.Kind{
	token.StringLit, token.BinaryLit, token.EnumLit, token.Ref, token.IntLit,
	token.LParen, token.Dollar, token.RealLit, token.Star, token.Upper,
}
