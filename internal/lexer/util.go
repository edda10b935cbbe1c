package lexer

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v' }

func isNameStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isNameContinue(b byte) bool {
	return isNameStart(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

// braceDelta counts '{' minus '}' outside of JSON strings.
func braceDelta(s string) int {
	depth := 0
	inStr := false
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case inStr && b == '\\':
			i++
		case b == '"':
			inStr = !inStr
		case inStr:
		case b == '{':
			depth++
		case b == '}':
			depth--
		}
	}
	return depth
}
