// This tool lists and extracts the samples of FMOD sample banks (FSB5).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
	"github.com/xlab/closer"

	"github.com/cwbudde/fsb5/internal/log"
)

var version string

func init() {
	if version == "" {
		version = "unknown"
	}
}

var verbosityFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "debug, d",
		Usage: `Show debug messages`,
	},
	cli.BoolFlag{
		Name:  "quiet, q",
		Usage: `Suppress information messages`,
	},
	cli.BoolFlag{
		Name:  "silent, Q",
		Usage: `Do not output any messages`,
	},
}

func configureLog(ctx *cli.Context) {
	log.Configure(ctx.Bool("debug"), ctx.Bool("quiet"), ctx.Bool("silent"))
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "fsb5"
	app.HelpName = "fsb5"
	app.Version = version
	app.Usage = "Lists and extracts the samples of FMOD sample banks (.fsb)"
	app.Writer = out

	app.Commands = []cli.Command{
		extractCmd,
		infoCmd,
	}

	app.Action = func(ctx *cli.Context) error {
		return cli.ShowAppHelp(ctx)
	}

	return app
}

func main() {
	closer.Bind(removePartial)

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "fsb5: %v\n", err)
		os.Exit(1)
	}
}
