package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/curly/internal/curly"
)

const checkLong = `
The path argument may be a directory or a file.

If it is the name of a file, then this file alone is checked and must
contain a single curl command.

If it is a directory, this directory is scanned recursively for all
files with the '.curl' or '.sh' extension and any matching files will be
checked.

Unterminated quotes and dangling backslashes are reported as warnings, as are
commands that change when converted to a request and back again, usually
because they use flags curly doesn't understand. A file that isn't a curl
command at all is an error.
`

// check returns the check subcommand.
func check() (*cli.Command, error) {
	var options curly.CheckOptions

	return cli.New(
		"check",
		cli.Short("Check files of curl commands for problems"),
		cli.Long(checkLong),
		cli.Arg(&options.Path, "path", "Path to check, may be directory or file", cli.ArgDefault(".")),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := curly.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Check(ctx, options)
		}),
	)
}
