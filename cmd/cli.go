package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fzft/chainset/deps/linenoise"
	"github.com/fzft/chainset/resp"
	"github.com/fzft/chainset/set"
)

var (
	CliHisFileEnv     = "CHAINSET_HISTFILE"
	CliHisFileDefault = ".chainset_history"
	CliPrompt         = "chainset> "
)

type CliCfg struct {
	// Initial bucket count of every new set.
	Capacity int
	Output   resp.OutputMode
	// Empty disables history persistence.
	HistoryFile string
	// Stop batch mode at the first failing command.
	ExitOnError bool
	// Read RESP encoded commands instead of text lines.
	Pipe bool
}

// Cli is the chainset shell: named string sets manipulated one command at
// a time. It is not safe for concurrent use.
type Cli struct {
	config *CliCfg
	sets   map[string]*set.Set[string]
	out    io.Writer
	logger *zap.Logger
}

func NewCli(config *CliCfg, out io.Writer, logger *zap.Logger) *Cli {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cli{
		config: config,
		sets:   make(map[string]*set.Set[string]),
		out:    out,
		logger: logger,
	}
}

// OutputModeFor picks the reply format. Like redis-cli, raw output is the
// default when stdout is not a terminal.
func OutputModeFor(raw, noRaw, respOut, stdoutTTY bool) resp.OutputMode {
	switch {
	case respOut:
		return resp.OutputRESP
	case raw:
		return resp.OutputRaw
	case noRaw || stdoutTTY:
		return resp.OutputStandard
	default:
		return resp.OutputRaw
	}
}

// Run executes argv when given, otherwise reads commands from in: RESP
// encoded in pipe mode, interactively when in is a terminal, line by line
// otherwise.
func (cli *Cli) Run(argv []string, in *os.File) error {
	switch {
	case len(argv) > 0:
		reply, err := cli.Execute(argv)
		cli.write(reply)
		return err
	case cli.config.Pipe:
		return cli.RunPipe(in)
	case isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()):
		ln := linenoise.New()
		defer ln.Close()
		return cli.repl(ln)
	default:
		return cli.RunBatch(in)
	}
}

// Execute runs one command and returns its reply. Command failures come
// back both as an error reply and as the error itself.
func (cli *Cli) Execute(argv []string) (resp.Node, error) {
	if len(argv) == 0 {
		return resp.Null{}, nil
	}

	c, ok := commandsByName[strings.ToUpper(argv[0])]
	if !ok {
		err := errors.Wrapf(ErrUnknownCommand, "'%s'", argv[0])
		cli.logger.Warn("command failed", zap.String("command", argv[0]), zap.Error(err))
		return resp.ErrorReply(err), err
	}

	if err := c.checkArity(len(argv)); err != nil {
		cli.logger.Warn("command failed", zap.String("command", c.name), zap.Error(err))
		return resp.ErrorReply(err), err
	}

	cli.logger.Debug("executing command", zap.String("command", c.name), zap.Int("argc", len(argv)))
	reply, err := c.proc(cli, argv)
	if err != nil {
		cli.logger.Warn("command failed", zap.String("command", c.name), zap.Error(err))
		return resp.ErrorReply(err), err
	}
	return reply, nil
}

// RunBatch executes one command per line. Empty lines and lines starting
// with '#' are skipped, QUIT and EXIT stop the run.
func (cli *Cli) RunBatch(r io.Reader) error {
	var errs MultiError

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		argv, err := splitArgs(line)
		if err == nil && isQuit(argv) {
			break
		}

		var reply resp.Node
		if err != nil {
			reply = resp.ErrorReply(err)
		} else {
			reply, err = cli.Execute(argv)
		}
		cli.write(reply)

		if err != nil {
			errs = append(errs, errors.Wrapf(err, "line %d", lineNo))
			if cli.config.ExitOnError {
				return errs
			}
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RunPipe executes RESP encoded commands until the input ends.
func (cli *Cli) RunPipe(r io.Reader) error {
	var errs MultiError

	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		argv, err := resp.ReadCommand(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			// the stream cannot be resynchronised after a framing error
			errs = append(errs, errors.Wrapf(err, "command %d", n))
			break
		}
		if isQuit(argv) {
			break
		}

		reply, err := cli.Execute(argv)
		cli.write(reply)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "command %d", n))
			if cli.config.ExitOnError {
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (cli *Cli) repl(ln *linenoise.LineNoise) error {
	ln.SetCompleter(linenoise.CommandCompleter(CommandNames()))

	historyFile := cli.config.HistoryFile
	if historyFile != "" {
		if err := ln.HistoryLoad(historyFile); err != nil && !os.IsNotExist(err) {
			cli.logger.Warn("could not load history", zap.String("file", historyFile), zap.Error(err))
		}
	}

	for {
		line, err := ln.Prompt(CliPrompt)
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				return nil
			}
			return err
		}

		argv, err := splitArgs(line)
		if err != nil {
			fmt.Fprintln(cli.out, "Invalid argument(s)")
			continue
		} else if len(argv) == 0 {
			continue
		}

		ln.AppendHistory(line)
		if historyFile != "" {
			if err := ln.HistorySave(historyFile); err != nil {
				cli.logger.Warn("could not save history", zap.String("file", historyFile), zap.Error(err))
			}
		}

		if isQuit(argv) {
			return nil
		} else if len(argv) == 1 && strings.EqualFold(argv[0], "clear") {
			if err := ln.ClearScreen(cli.out); err != nil {
				cli.logger.Warn("could not clear screen", zap.Error(err))
			}
			continue
		}

		reply, _ := cli.Execute(argv)
		cli.write(reply)
	}
}

func (cli *Cli) write(reply resp.Node) {
	fmt.Fprint(cli.out, resp.Render(reply, cli.config.Output))
}

func (cli *Cli) lookup(key string) *set.Set[string] {
	if s, ok := cli.sets[key]; ok {
		return s
	}
	return cli.newSet(key)
}

func (cli *Cli) lookupOrCreate(key string) *set.Set[string] {
	s, ok := cli.sets[key]
	if !ok {
		s = cli.newSet(key)
		cli.sets[key] = s
	}
	return s
}

func (cli *Cli) newSet(key string) *set.Set[string] {
	return set.New[string](
		set.WithCapacity(cli.config.Capacity),
		set.WithLogger(cli.logger.With(zap.String("key", key))),
	)
}

func isQuit(argv []string) bool {
	return len(argv) == 1 && (strings.EqualFold(argv[0], "quit") || strings.EqualFold(argv[0], "exit"))
}

// splitArgs splits a command line into words. Double quoted words support
// \" \\ \n \t and \r escapes, single quoted words are taken literally.
func splitArgs(line string) ([]string, error) {
	var (
		argv    []string
		current strings.Builder
		inWord  bool
	)

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == ' ' || ch == '\t':
			if inWord {
				argv = append(argv, current.String())
				current.Reset()
				inWord = false
			}
		case ch == '"' || ch == '\'':
			end, err := readQuoted(line, i, &current)
			if err != nil {
				return nil, err
			}
			i = end
			inWord = true
		default:
			current.WriteByte(ch)
			inWord = true
		}
	}
	if inWord {
		argv = append(argv, current.String())
	}
	return argv, nil
}

// readQuoted appends the quoted word starting at line[start] to b and
// returns the index of the closing quote.
func readQuoted(line string, start int, b *strings.Builder) (int, error) {
	quote := line[start]
	for i := start + 1; i < len(line); i++ {
		ch := line[i]
		if ch == quote {
			return i, nil
		}
		if ch == '\\' && quote == '"' && i+1 < len(line) {
			i++
			switch line[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(line[i])
			}
			continue
		}
		b.WriteByte(ch)
	}
	return 0, errors.WithStack(ErrUnbalanced)
}

// HistoryPath resolves the history file: the environment override wins,
// /dev/null disables history, otherwise the dotfile in $HOME is used.
func HistoryPath() string {
	return getDotfilePath(CliHisFileEnv, CliHisFileDefault)
}

func getDotfilePath(envOverride, dotFilename string) string {
	var dotPath string

	path := os.Getenv(envOverride)
	if path != "" {
		if path == "/dev/null" {
			return ""
		}
		dotPath = path
	} else {
		home := os.Getenv("HOME")
		if home != "" {
			dotPath = fmt.Sprintf("%s/%s", home, dotFilename)
		}
	}
	return dotPath
}
