// Package cmd implements curly's CLI.
package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/curly/internal/curly"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const long = `
curly converts between curl commands and structured HTTP request documents.

Run without a subcommand, curly prompts for the parts of a request and prints
the equivalent curl command, quoted and ready to paste into a shell.
`

// Build builds and returns the curly CLI.
func Build() (*cli.Command, error) {
	var options curly.BuildOptions

	return cli.New(
		"curly",
		cli.Short("Convert between curl commands and HTTP requests"),
		cli.Long(long),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Build a curl command interactively", "curly"),
		cli.Example("Turn a curl command into JSON", "curly import ./request.curl"),
		cli.Example("Read a curl command from stdin and show it as a .http request", "pbpaste | curly import - --format http"),
		cli.Example("Turn a YAML request document into a curl command", "curly export ./request.yaml"),
		cli.Example("Check every curl command in a directory (recursively)", "curly check ./scripts"),
		cli.Flag(&options.AllowGetBody, "allow-get-body", flag.NoShortHand, "Send the body of a GET request"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logs"),
		cli.SubCommands(importCmd, export, check),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := curly.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Build(ctx, options)
		}),
	)
}
