package csv

import (
	"bytes"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// JoinLine formats fields as one line that Tokenize splits back with sep.
//
// Fields containing the separator, quotes, newlines, or carriage returns are
// quoted, with quotes doubled. Tokenize trims values and drops a trailing
// empty field, so surrounding blanks and a last empty value are not
// preserved.
//
// Example:
//
//	csv.JoinLine([]string{"a", "b;c"}, ';')
//	// a;"b;c"
func JoinLine(fields []string, sep rune) string {
	var buf bytes.Buffer
	writeLine(&buf, fields, sep)
	return buf.String()
}

// RenderAST converts a node produced by LoadAST back to text, one line per
// row, each ending in "\n".
func RenderAST(node *ast.ArrayDataNode, sep rune) []byte {
	var buf bytes.Buffer
	for _, row := range RowsFromAST(node) {
		writeLine(&buf, row, sep)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func writeLine(buf *bytes.Buffer, fields []string, sep rune) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteRune(sep)
		}
		writeField(buf, field, sep)
	}
}

// writeField writes a field, quoting it if needed.
func writeField(buf *bytes.Buffer, value string, sep rune) {
	if !strings.ContainsRune(value, sep) && !strings.ContainsAny(value, "\"\n\r") {
		buf.WriteString(value)
		return
	}

	buf.WriteByte('"')
	for _, ch := range value {
		if ch == '"' {
			buf.WriteString(`""`)
		} else {
			buf.WriteRune(ch)
		}
	}
	buf.WriteByte('"')
}
