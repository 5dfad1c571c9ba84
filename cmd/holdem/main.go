package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" help:"HCL configuration file" default:"holdem.hcl" type:"path"`

	Play     PlayCmd     `cmd:"" default:"1" help:"Play against bots in the terminal"`
	Simulate SimulateCmd `cmd:"" help:"Run bot-only matches and report results"`
	Eval     EvalCmd     `cmd:"" help:"Evaluate a hand of five to seven cards"`
	History  HistoryCmd  `cmd:"" help:"Show recorded PHH hand histories"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em against bots in your terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
