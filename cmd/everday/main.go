package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config string `help:"YAML config file. Falls back to EVERDAY_CONFIG_PATH." type:"path" short:"c"`
}

var CLI struct {
	Globals

	Version kong.VersionFlag `help:"Print the version and exit."`

	Serve   ServeCmd   `cmd:"" help:"Serve the HTTP API and the /mcp endpoint." default:"1"`
	MCP     MCPCmd     `cmd:"" name:"mcp" help:"Run a stdio MCP server for one account."`
	Migrate MigrateCmd `cmd:"" help:"Create missing database tables."`
	Account struct {
		Create AccountCreateCmd `cmd:"" help:"Create an account and print its API token."`
	} `cmd:"" help:"Manage accounts."`
	DSN struct {
		Set   DSNSetCmd   `cmd:"" help:"Store the postgres DSN in the OS keyring."`
		Clear DSNClearCmd `cmd:"" help:"Remove the postgres DSN from the OS keyring."`
	} `cmd:"" name:"dsn" help:"Manage the keyring database DSN."`
	Limits LimitsCmd `cmd:"" help:"Print the free plan ceilings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("everday"),
		kong.Description("Habit, notes and journal backend with guest sessions"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": version},
	)

	if err := ctx.Run(&CLI.Globals); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
