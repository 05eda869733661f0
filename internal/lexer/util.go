package lexer

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// isKeywordByte: [A-Z0-9_]
func isKeywordByte(b byte) bool {
	return isUpper(b) || isDec(b) || b == '_'
}

// isUpperHex: binary literals use uppercase hex only.
func isUpperHex(b byte) bool {
	return isDec(b) || (b >= 'A' && b <= 'F')
}

// isHex: escapes tolerate lowercase digits, many exporters write them.
func isHex(b byte) bool {
	return isUpperHex(b) || (b >= 'a' && b <= 'f')
}

func hexVal(b byte) byte {
	switch {
	case b <= '9':
		return b - '0'
	case b >= 'a':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
