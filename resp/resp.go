package resp

const CRLF string = "\r\n"

// Types equivalent to RESP version 2
const (
	TypeArray   byte = '*'
	TypeBlob    byte = '$'
	TypeSimple  byte = '+'
	TypeError   byte = '-'
	TypeInteger byte = ':'
)

// Types introduced by RESP3
const (
	TypeNull    byte = '_'
	TypeBoolean byte = '#'
	TypeMap     byte = '%'
	TypeSet     byte = '~'
)

// Node is a shell reply.
type Node interface {
}

type BlobString struct {
	Value string
}

type SimpleString struct {
	Value string
}

type Error struct {
	Message string
}

type Integer struct {
	Value int
}

type Boolean struct {
	Value bool
}

type Null struct {
}

// Array represents an array in RESP
type Array struct {
	Elements []Node
}

type Set struct {
	Elements []Node
}

// Map keeps its pairs in insertion order.
type Map struct {
	Elements []Pair
}

type Pair struct {
	Key   Node
	Value Node
}

var OK = SimpleString{Value: "OK"}

func ErrorReply(err error) Error {
	return Error{Message: "ERR " + err.Error()}
}

// Strings wraps values as blob strings.
func Strings(values []string) []Node {
	nodes := make([]Node, len(values))
	for i, v := range values {
		nodes[i] = BlobString{Value: v}
	}
	return nodes
}
