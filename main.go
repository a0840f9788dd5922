package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/fzft/chainset/cmd"
	"github.com/fzft/chainset/log"
)

var CLI struct {
	Raw         bool             `help:"Print replies without type annotations"`
	NoRaw       bool             `name:"no-raw" help:"Force formatted output even when stdout is not a terminal"`
	Resp        bool             `help:"Print replies in RESP3 wire format"`
	Pipe        bool             `help:"Read RESP encoded commands from stdin"`
	Capacity    int              `help:"Initial bucket count of new sets" default:"10"`
	History     string           `help:"History file for interactive mode (defaults to ~/.chainset_history or CHAINSET_HISTFILE)" type:"path"`
	LogLevel    string           `name:"log-level" help:"Log level" default:"warn" enum:"debug,info,warn,error"`
	ExitOnError bool             `short:"e" name:"exit-on-error" help:"Stop reading stdin at the first failing command"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Command []string `arg:"" optional:"" help:"Command to run instead of reading stdin"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("chainset"),
		kong.Description("Interactive shell over named hash sets."),
		kong.Vars{"version": Version()},
	)

	if err := log.InitLogger(CLI.LogLevel); err != nil {
		ctx.FatalIfErrorf(err)
	}
	defer log.Logger.Sync()

	historyFile := CLI.History
	if historyFile == "" {
		historyFile = cmd.HistoryPath()
	}

	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	cfg := &cmd.CliCfg{
		Capacity:    CLI.Capacity,
		Output:      cmd.OutputModeFor(CLI.Raw, CLI.NoRaw, CLI.Resp, stdoutTTY),
		HistoryFile: historyFile,
		ExitOnError: CLI.ExitOnError,
		Pipe:        CLI.Pipe,
	}

	cli := cmd.NewCli(cfg, os.Stdout, log.Logger.Named("cli"))
	if err := cli.Run(CLI.Command, os.Stdin); err != nil {
		log.Logger.Sync()
		ctx.Exit(1)
	}
}
