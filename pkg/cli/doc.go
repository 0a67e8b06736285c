/*
Package cli provides command-line utilities for the indra command.

It includes output formatters for command results, a progress reporter for
long-running dataset conversions, typed command errors, and signal-aware
context setup:

	ctx := cli.SetupSignalHandler()
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
*/
package cli
