package dql

import "strings"

func singleQuoted(s string) string {
	const lowerhex = "0123456789abcdef"

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < ' ' || r == 0x7f {
				sb.WriteString(`\x`)
				sb.WriteByte(lowerhex[byte(r)>>4])
				sb.WriteByte(lowerhex[byte(r)&0xF])
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
