package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/curly/internal/curly"
	"go.followtheprocess.codes/curly/internal/format"
)

const importLong = `
The file must contain a single curl command, line continuations and shell
quoting are understood. Pass '-' as the file to read the command from stdin.

Only the flags that describe the request are used: the method, url, headers,
data, user and cookie. Anything else is ignored. An Authorization header takes
precedence over '--user' and '--cookie'.
`

// importCmd returns the curly import subcommand.
func importCmd() (*cli.Command, error) {
	var options curly.ImportOptions

	return cli.New(
		"import",
		cli.Short("Import a curl command as a request document"),
		cli.Long(importLong),
		cli.Arg(&options.Path, "file", "Path to a file containing the curl command, '-' for stdin"),
		cli.Flag(
			&options.Format,
			"format",
			'f',
			"Output format (json|yaml|toml|http)",
			cli.FlagDefault(format.JSON),
		),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := curly.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Import(ctx, options)
		}),
	)
}
