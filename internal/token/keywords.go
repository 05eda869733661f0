package token

// Structural keywords. They are lexed as Upper and matched by text.
const (
	KwISO    = "ISO-10303-21"
	KwEndISO = "END-ISO-10303-21"
	KwHeader = "HEADER"
	KwEndsec = "ENDSEC"
	KwData   = "DATA"
)

var structural = map[string]struct{}{
	KwISO:    {},
	KwEndISO: {},
	KwHeader: {},
	KwEndsec: {},
	KwData:   {},
}

// IsStructural сообщает, является ли слово ключевым словом секций файла.
func IsStructural(word string) bool {
	_, ok := structural[word]
	return ok
}
