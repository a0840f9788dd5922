package cmd

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/fzft/chainset/resp"
	"github.com/fzft/chainset/set"
)

// maxCopySize bounds the SCOPY buffer.
const maxCopySize = 1024 * 1024

type commandProc func(cli *Cli, argv []string) (resp.Node, error)

// cliCommand describes one shell command. arity counts the command name;
// a negative arity means at least -arity words.
type cliCommand struct {
	name    string
	arity   int
	params  string
	summary string
	proc    commandProc
}

var (
	commandTable   []*cliCommand
	commandsByName map[string]*cliCommand
)

func init() {
	commandTable = []*cliCommand{
		{"SADD", -3, "key member [member ...]", "Add members to a set", saddCommand},
		{"SREM", -3, "key member [member ...]", "Remove members from a set", sremCommand},
		{"SISMEMBER", 3, "key member", "Test whether member belongs to a set", sismemberCommand},
		{"SCARD", 2, "key", "Number of members in a set", scardCommand},
		{"SMEMBERS", 2, "key", "All members of a set", smembersCommand},
		{"SCLEAR", 2, "key", "Remove every member, keeping the grown capacity", sclearCommand},
		{"SINFO", 2, "key", "Size and bucket capacity of a set", sinfoCommand},
		{"SCOPY", 4, "key size offset", "Copy a set into a buffer of size slots starting at offset", scopyCommand},
		{"SDIFFSTORE", 3, "destination source", "Remove the members of source from destination", storeCommand((*set.Set[string]).ExceptWith)},
		{"SINTERSTORE", 3, "destination source", "Keep only the members of destination also in source", storeCommand((*set.Set[string]).IntersectWith)},
		{"SUNIONSTORE", 3, "destination source", "Add the members of source to destination", storeCommand((*set.Set[string]).UnionWith)},
		{"SXORSTORE", 3, "destination source", "Keep members in exactly one of destination and source", storeCommand((*set.Set[string]).SymmetricExceptWith)},
		{"SUNION", 4, "destination first second", "Store the union of two sets in a new set", sunionCommand},
		{"SEQUALS", 3, "key other", "Test whether two sets hold the same members", predicateCommand((*set.Set[string]).SetEquals)},
		{"SSUBSET", 3, "key other", "Test whether key is a subset of other", predicateCommand((*set.Set[string]).IsSubsetOf)},
		{"SPSUBSET", 3, "key other", "Test whether key is a proper subset of other", predicateCommand((*set.Set[string]).IsProperSubsetOf)},
		{"SSUPERSET", 3, "key other", "Test whether key is a superset of other", predicateCommand((*set.Set[string]).IsSupersetOf)},
		{"SPSUPERSET", 3, "key other", "Test whether key is a proper superset of other", predicateCommand((*set.Set[string]).IsProperSupersetOf)},
		{"SOVERLAPS", 3, "key other", "Test whether two sets share a member", predicateCommand((*set.Set[string]).Overlaps)},
		{"DEL", -2, "key [key ...]", "Delete sets", delCommand},
		{"KEYS", 1, "", "Names of all sets", keysCommand},
		{"HELP", -1, "[command]", "Show command help", helpCommand},
	}

	commandsByName = make(map[string]*cliCommand, len(commandTable))
	for _, c := range commandTable {
		commandsByName[c.name] = c
	}
}

// CommandNames lists every command plus the shell builtins.
func CommandNames() []string {
	names := make([]string, 0, len(commandTable)+3)
	for _, c := range commandTable {
		names = append(names, c.name)
	}
	return append(names, "CLEAR", "QUIT", "EXIT")
}

func (c *cliCommand) checkArity(argc int) error {
	if (c.arity > 0 && argc != c.arity) || (c.arity < 0 && argc < -c.arity) {
		return errors.Wrapf(ErrWrongArity, "for '%s' command", strings.ToLower(c.name))
	}
	return nil
}

func (c *cliCommand) usage() string {
	if c.params == "" {
		return c.name + " - " + c.summary
	}
	return c.name + " " + c.params + " - " + c.summary
}

func saddCommand(cli *Cli, argv []string) (resp.Node, error) {
	s := cli.lookupOrCreate(argv[1])
	added := 0
	for _, member := range argv[2:] {
		if s.Add(member) {
			added++
		}
	}
	return resp.Integer{Value: added}, nil
}

func sremCommand(cli *Cli, argv []string) (resp.Node, error) {
	s, ok := cli.sets[argv[1]]
	if !ok {
		return resp.Integer{Value: 0}, nil
	}

	removed := 0
	for _, member := range argv[2:] {
		if s.Remove(member) {
			removed++
		}
	}
	return resp.Integer{Value: removed}, nil
}

func sismemberCommand(cli *Cli, argv []string) (resp.Node, error) {
	return resp.Boolean{Value: cli.lookup(argv[1]).Contains(argv[2])}, nil
}

func scardCommand(cli *Cli, argv []string) (resp.Node, error) {
	return resp.Integer{Value: cli.lookup(argv[1]).Len()}, nil
}

func smembersCommand(cli *Cli, argv []string) (resp.Node, error) {
	return resp.Set{Elements: resp.Strings(cli.lookup(argv[1]).Items())}, nil
}

func sclearCommand(cli *Cli, argv []string) (resp.Node, error) {
	if s, ok := cli.sets[argv[1]]; ok {
		s.Clear()
	}
	return resp.OK, nil
}

func sinfoCommand(cli *Cli, argv []string) (resp.Node, error) {
	s := cli.lookup(argv[1])
	return resp.Map{Elements: []resp.Pair{
		{Key: resp.BlobString{Value: "size"}, Value: resp.Integer{Value: s.Len()}},
		{Key: resp.BlobString{Value: "capacity"}, Value: resp.Integer{Value: s.Capacity()}},
	}}, nil
}

func scopyCommand(cli *Cli, argv []string) (resp.Node, error) {
	size, err := parseInt(argv[2])
	if err != nil {
		return nil, err
	}
	if size < 0 || size > maxCopySize {
		return nil, errors.Wrapf(ErrNotInteger, "size must be between 0 and %d", maxCopySize)
	}
	offset, err := parseInt(argv[3])
	if err != nil {
		return nil, err
	}

	s := cli.lookup(argv[1])
	dst := make([]string, size)
	if err := s.CopyTo(dst, offset); err != nil {
		return nil, err
	}

	slots := make([]resp.Node, size)
	for i, v := range dst {
		if i < offset || i >= offset+s.Len() {
			slots[i] = resp.Null{}
			continue
		}
		slots[i] = resp.BlobString{Value: v}
	}
	return resp.Array{Elements: slots}, nil
}

// storeCommand applies an in-place operation to the destination set.
func storeCommand(op func(s *set.Set[string], other set.Sequence[string]) error) commandProc {
	return func(cli *Cli, argv []string) (resp.Node, error) {
		dst := cli.lookupOrCreate(argv[1])
		if err := op(dst, cli.lookup(argv[2])); err != nil {
			return nil, err
		}
		return resp.Integer{Value: dst.Len()}, nil
	}
}

func sunionCommand(cli *Cli, argv []string) (resp.Node, error) {
	u, err := set.Union(cli.lookup(argv[2]), cli.lookup(argv[3]))
	if err != nil {
		return nil, err
	}
	cli.sets[argv[1]] = u
	return resp.Integer{Value: u.Len()}, nil
}

func predicateCommand(op func(s *set.Set[string], other set.Sequence[string]) (bool, error)) commandProc {
	return func(cli *Cli, argv []string) (resp.Node, error) {
		ok, err := op(cli.lookup(argv[1]), cli.lookup(argv[2]))
		if err != nil {
			return nil, err
		}
		return resp.Boolean{Value: ok}, nil
	}
}

func delCommand(cli *Cli, argv []string) (resp.Node, error) {
	deleted := 0
	for _, key := range argv[1:] {
		if _, ok := cli.sets[key]; ok {
			delete(cli.sets, key)
			deleted++
		}
	}
	return resp.Integer{Value: deleted}, nil
}

func keysCommand(cli *Cli, _ []string) (resp.Node, error) {
	return resp.Array{Elements: resp.Strings(slices.Sorted(maps.Keys(cli.sets)))}, nil
}

func helpCommand(_ *Cli, argv []string) (resp.Node, error) {
	if len(argv) > 1 {
		c, ok := commandsByName[strings.ToUpper(argv[1])]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownCommand, "'%s'", argv[1])
		}
		return resp.SimpleString{Value: c.usage()}, nil
	}

	lines := make([]resp.Node, len(commandTable))
	for i, c := range commandTable {
		lines[i] = resp.SimpleString{Value: c.usage()}
	}
	return resp.Array{Elements: lines}, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrNotInteger, "%q", s)
	}
	return n, nil
}
