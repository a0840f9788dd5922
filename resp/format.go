package resp

import (
	"fmt"
	"strconv"
	"strings"
)

type OutputMode uint8

const (
	OutputStandard OutputMode = iota
	OutputRaw
	OutputRESP
)

// Render returns node as the shell prints it in the given mode.
// Standard and raw output end with a newline, RESP output is the wire form.
func Render(node Node, mode OutputMode) string {
	switch mode {
	case OutputRaw:
		return formatRaw(node)
	case OutputRESP:
		return string(Encode(node))
	default:
		return formatStandard(node, "") + "\n"
	}
}

// formatStandard mimics redis-cli's human readable replies.
func formatStandard(node Node, indent string) string {
	switch n := node.(type) {
	case SimpleString:
		return n.Value
	case BlobString:
		return strconv.Quote(n.Value)
	case Integer:
		return fmt.Sprintf("(integer) %d", n.Value)
	case Boolean:
		return fmt.Sprintf("(%t)", n.Value)
	case Error:
		return "(error) " + n.Message
	case Array:
		return formatList(n.Elements, "(empty array)", indent)
	case Set:
		return formatList(n.Elements, "(empty set)", indent)
	case Map:
		if len(n.Elements) == 0 {
			return "(empty hash)"
		}
		width := len(strconv.Itoa(len(n.Elements)))
		lines := make([]string, len(n.Elements))
		for i, p := range n.Elements {
			prefix := fmt.Sprintf("%*d# ", width, i+1)
			lines[i] = prefix + formatStandard(p.Key, "") + " => " +
				formatStandard(p.Value, indent+strings.Repeat(" ", len(prefix)))
			if i > 0 {
				lines[i] = indent + lines[i]
			}
		}
		return strings.Join(lines, "\n")
	default:
		return "(nil)"
	}
}

func formatList(elements []Node, empty, indent string) string {
	if len(elements) == 0 {
		return empty
	}

	width := len(strconv.Itoa(len(elements)))
	lines := make([]string, len(elements))
	for i, e := range elements {
		prefix := fmt.Sprintf("%*d) ", width, i+1)
		lines[i] = prefix + formatStandard(e, indent+strings.Repeat(" ", len(prefix)))
		if i > 0 {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// formatRaw prints bare values, one per line, for scripts and pipes.
func formatRaw(node Node) string {
	var b strings.Builder
	writeRaw(&b, node)
	return b.String()
}

func writeRaw(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case SimpleString:
		b.WriteString(n.Value + "\n")
	case BlobString:
		b.WriteString(n.Value + "\n")
	case Integer:
		b.WriteString(strconv.Itoa(n.Value) + "\n")
	case Boolean:
		if n.Value {
			b.WriteString("1\n")
		} else {
			b.WriteString("0\n")
		}
	case Error:
		b.WriteString(n.Message + "\n")
	case Array:
		for _, e := range n.Elements {
			writeRaw(b, e)
		}
	case Set:
		for _, e := range n.Elements {
			writeRaw(b, e)
		}
	case Map:
		for _, p := range n.Elements {
			writeRaw(b, p.Key)
			writeRaw(b, p.Value)
		}
	default:
		b.WriteString("\n")
	}
}
