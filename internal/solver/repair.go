package solver

// Repair applies a best-effort structural cleanup to near-JSON text. It is a
// single left-to-right scan that tracks whether the cursor is inside a string
// literal, so the rewrites cannot corrupt legitimate string content (colons,
// braces, or escaped formula backslashes inside values are left alone):
//
//   - inside strings: a backslash that does not begin a recognized escape
//     sequence is doubled;
//   - outside strings: bare identifiers used as object keys are quoted, and a
//     comma immediately preceding a closing brace/bracket is dropped.
//
// It guarantees nothing beyond the defect patterns observed from the
// providers in use; callers re-attempt a strict parse on the result.
func Repair(in string) string {
	out := make([]byte, 0, len(in)+16)
	s := []byte(in)
	inString := false
	for i := 0; i < len(s); {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				if n, ok := escapeLen(s, i); ok {
					out = append(out, s[i:i+n]...)
					i += n
				} else {
					out = append(out, '\\', '\\')
					i++
				}
			case '"':
				inString = false
				out = append(out, c)
				i++
			default:
				out = append(out, c)
				i++
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			out = append(out, c)
			i++
		case c == ',':
			j := skipSpace(s, i+1)
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				i++ // trailing comma
				continue
			}
			out = append(out, c)
			i++
		case isIdentStart(c):
			j := i + 1
			for j < len(s) && isIdentByte(s[j]) {
				j++
			}
			word := s[i:j]
			if k := skipSpace(s, j); k < len(s) && s[k] == ':' && !isJSONLiteral(word) {
				out = append(out, '"')
				out = append(out, word...)
				out = append(out, '"')
			} else {
				out = append(out, word...)
			}
			i = j
		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

// escapeLen reports the length of a valid escape sequence starting at the
// backslash s[i], or false when the backslash is stray.
func escapeLen(s []byte, i int) (int, bool) {
	if i+1 >= len(s) {
		return 0, false
	}
	switch s[i+1] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return 2, true
	case 'u':
		if i+5 < len(s) && isHex(s[i+2]) && isHex(s[i+3]) && isHex(s[i+4]) && isHex(s[i+5]) {
			return 6, true
		}
	}
	return 0, false
}

func skipSpace(s []byte, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isJSONLiteral(word []byte) bool {
	switch string(word) {
	case "true", "false", "null":
		return true
	}
	return false
}
