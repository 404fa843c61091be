package pdf

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"
)

// literalStringRe matches PDF literal strings: (text).
var literalStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// textShowingOps are the content-stream operators that paint text from a
// preceding literal string.
var textShowingOps = [][]byte{[]byte("Tj"), []byte("TJ"), []byte("'"), []byte("\"")}

// textFromContentStream scans a decoded page content stream and collects the
// arguments of text-showing operators. Positioning operators contribute
// whitespace so words on separate lines do not run together.
func textFromContentStream(stream []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(stream, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		if showsText(line) {
			for _, match := range literalStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodeLiteral(match[1]))
			}
			continue
		}

		// Td/TD reposition the text cursor; T* advances a line.
		if bytes.HasSuffix(line, []byte("Td")) || bytes.HasSuffix(line, []byte("TD")) {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		} else if bytes.Equal(line, []byte("T*")) {
			sb.WriteByte('\n')
		}
	}

	return normalizeStreamText(sb.String())
}

// showsText reports whether a content-stream line ends in a text-showing
// operator with at least one literal string argument.
func showsText(line []byte) bool {
	if !bytes.Contains(line, []byte("(")) {
		return false
	}
	for _, op := range textShowingOps {
		if bytes.HasSuffix(line, op) {
			return true
		}
	}
	return false
}

// decodeLiteral resolves PDF string escape sequences, including octal codes.
func decodeLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for d := 0; d < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; d++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// normalizeStreamText collapses runs of whitespace and drops non-printable
// glyph noise left over from the operator scan.
func normalizeStreamText(text string) string {
	var sb strings.Builder
	pendingSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = sb.Len() > 0
		case unicode.IsPrint(r):
			if pendingSpace {
				sb.WriteByte(' ')
				pendingSpace = false
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
