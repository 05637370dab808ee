package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/curly/internal/curly"
)

const exportLong = `
The request document may be JSON, YAML or TOML, the format is taken from the
file extension unless '--format' is given. Pass '-' as the file to read the
document from stdin, in which case '--format' is required.

The body of a GET request is dropped unless '--allow-get-body' is passed.
`

// export returns the curly export subcommand.
func export() (*cli.Command, error) {
	var options curly.ExportOptions

	return cli.New(
		"export",
		cli.Short("Export a request document as a curl command"),
		cli.Long(exportLong),
		cli.Arg(&options.Path, "file", "Path to the request document, '-' for stdin"),
		cli.Flag(&options.Format, "format", 'f', "Format of the request document (json|yaml|toml)"),
		cli.Flag(&options.AllowGetBody, "allow-get-body", flag.NoShortHand, "Send the body of a GET request"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := curly.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Export(ctx, options)
		}),
	)
}
