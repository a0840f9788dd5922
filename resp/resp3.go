package resp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// RESP3 serializer for shell replies and reader for piped commands.
// https://github.com/redis/redis-specifications/blob/master/protocol/RESP3.md

var ErrProtocol = errors.New("protocol error")

const (
	maxMultibulkLen = 1024 * 1024
	maxBulkLen      = 512 * 1024 * 1024
)

// Simple strings and errors are line framed and cannot carry CR or LF.
var lineSafe = strings.NewReplacer("\r", " ", "\n", " ")

// Encode serializes node in RESP3.
func Encode(node Node) []byte {
	var buf bytes.Buffer
	writeNode(&buf, node)
	return buf.Bytes()
}

func writeNode(buf *bytes.Buffer, node Node) {
	switch n := node.(type) {
	case SimpleString:
		fmt.Fprintf(buf, "%c%s%s", TypeSimple, lineSafe.Replace(n.Value), CRLF)
	case BlobString:
		fmt.Fprintf(buf, "%c%d%s%s%s", TypeBlob, len(n.Value), CRLF, n.Value, CRLF)
	case Integer:
		fmt.Fprintf(buf, "%c%d%s", TypeInteger, n.Value, CRLF)
	case Boolean:
		v := 'f'
		if n.Value {
			v = 't'
		}
		fmt.Fprintf(buf, "%c%c%s", TypeBoolean, v, CRLF)
	case Null:
		fmt.Fprintf(buf, "%c%s", TypeNull, CRLF)
	case Error:
		fmt.Fprintf(buf, "%c%s%s", TypeError, lineSafe.Replace(n.Message), CRLF)
	case Array:
		writeAggregate(buf, TypeArray, n.Elements)
	case Set:
		writeAggregate(buf, TypeSet, n.Elements)
	case Map:
		fmt.Fprintf(buf, "%c%d%s", TypeMap, len(n.Elements), CRLF)
		for _, p := range n.Elements {
			writeNode(buf, p.Key)
			writeNode(buf, p.Value)
		}
	default:
		fmt.Fprintf(buf, "%c%s", TypeNull, CRLF)
	}
}

func writeAggregate(buf *bytes.Buffer, tp byte, elements []Node) {
	fmt.Fprintf(buf, "%c%d%s", tp, len(elements), CRLF)
	for _, e := range elements {
		writeNode(buf, e)
	}
}

// ConvertToRESP encodes a command line as a RESP array of blob strings.
func ConvertToRESP(command string, arguments ...string) []byte {
	totalArgs := len(arguments) + 1 // +1 for the command itself

	var builder strings.Builder

	// Array with totalArgs elements
	builder.WriteString(fmt.Sprintf("*%d%s", totalArgs, CRLF))

	// Add the command
	builder.WriteString(fmt.Sprintf("$%d%s%s%s", len(command), CRLF, command, CRLF))

	// Add the arguments
	for _, arg := range arguments {
		builder.WriteString(fmt.Sprintf("$%d%s%s%s", len(arg), CRLF, arg, CRLF))
	}

	return []byte(builder.String())
}

// ReadCommand reads one command encoded as a RESP array of blob strings.
// It returns io.EOF when the input ends cleanly between commands.
func ReadCommand(r *bufio.Reader) ([]string, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	if len(line) == 0 || line[0] != TypeArray {
		return nil, errors.Wrapf(ErrProtocol, "expected '%c', got %q", TypeArray, line)
	}

	count, err := strconv.Atoi(line[1:])
	if err != nil || count < 0 {
		return nil, errors.Wrapf(ErrProtocol, "invalid multibulk length %q", line[1:])
	}
	if count > maxMultibulkLen {
		return nil, errors.Wrapf(ErrProtocol, "multibulk length %d exceeds %d", count, maxMultibulkLen)
	}

	args := make([]string, 0, count)
	for i := 0; i < count; i++ {
		arg, err := readBlob(r)
		if err != nil {
			return nil, noEOF(err)
		}
		args = append(args, arg)
	}
	return args, nil
}

func readBlob(r *bufio.Reader) (string, error) {
	line, err := readLine(r)
	if err != nil {
		return "", err
	}
	if len(line) == 0 || line[0] != TypeBlob {
		return "", errors.Wrapf(ErrProtocol, "expected '%c', got %q", TypeBlob, line)
	}

	length, err := strconv.Atoi(line[1:])
	if err != nil || length < 0 {
		return "", errors.Wrapf(ErrProtocol, "invalid bulk length %q", line[1:])
	}
	if length > maxBulkLen {
		return "", errors.Wrapf(ErrProtocol, "bulk length %d exceeds %d", length, maxBulkLen)
	}

	data := make([]byte, length+len(CRLF))
	if _, err := io.ReadFull(r, data); err != nil {
		return "", err
	}
	if string(data[length:]) != CRLF {
		return "", errors.Wrap(ErrProtocol, "bulk string not terminated by CRLF")
	}
	return string(data[:length]), nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
