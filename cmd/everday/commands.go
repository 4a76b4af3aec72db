package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/everday/everday/internal/config"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/mcp"
	"github.com/everday/everday/internal/transport"
)

// ServeCmd serves the HTTP API with the streamable MCP handler at /mcp.
type ServeCmd struct{}

func (c *ServeCmd) Run(g *Globals) error {
	rt, err := open(g, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := signalContext()
	defer stop()

	if idle := rt.cfg.Guest.IdleTimeout; idle > 0 {
		go rt.app.Guests.Run(ctx, sweepInterval(idle), idle)
	}

	auth := transport.AuthMiddleware(rt.app.Accounts)
	if !rt.cfg.Auth.Enabled {
		if _, err := rt.app.Accounts.EnsureProfile(ctx, rt.cfg.Auth.Account, ""); err != nil {
			return fmt.Errorf("preparing static account: %w", err)
		}
		auth = transport.StaticAccount(rt.cfg.Auth.Account)
		rt.logger.Warn("authentication disabled", "account_id", rt.cfg.Auth.Account)
	}

	mcpServer := mcp.NewServer(mcp.Config{
		App:            rt.app,
		Resolver:       rt.app.Accounts,
		AuthEnabled:    rt.cfg.Auth.Enabled,
		TransportMode:  "http",
		DefaultAccount: rt.cfg.Auth.Account,
		Version:        version,
		Logger:         rt.logger.With("component", "mcp"),
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)

	server := &http.Server{
		Addr: fmt.Sprintf("%s:%d", rt.cfg.Server.Host, rt.cfg.Server.Port),
		Handler: transport.NewServer(transport.Config{
			App:    rt.app,
			Auth:   auth,
			MCP:    mcpHandler,
			Logger: rt.logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serveUntilDone(ctx, rt.logger, server)
}

// sweepInterval checks for idle guest sessions a few times per timeout,
// at most once a minute.
func sweepInterval(idle time.Duration) time.Duration {
	if d := idle / 4; d > time.Minute {
		return d
	}
	return time.Minute
}

// MCPCmd runs a stdio MCP server. Stdio has no auth, so the account is fixed.
type MCPCmd struct {
	Account string `help:"Account the assistant acts as." required:""`
}

func (c *MCPCmd) Run(g *Globals) error {
	rt, err := open(g, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := signalContext()
	defer stop()

	if _, err := rt.app.Accounts.Get(ctx, c.Account); err != nil {
		return fmt.Errorf("account %s: %w", c.Account, err)
	}

	server := mcp.NewServer(mcp.Config{
		App:            rt.app,
		TransportMode:  "stdio",
		DefaultAccount: c.Account,
		Version:        version,
		Logger:         rt.logger.With("component", "mcp"),
	})
	rt.logger.Info("starting stdio transport", "account_id", c.Account)
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

// MigrateCmd creates missing tables.
type MigrateCmd struct{}

func (c *MigrateCmd) Run(g *Globals) error {
	rt, err := open(g, false)
	if err != nil {
		return err
	}
	defer rt.Close()
	rt.logger.Info("migrations applied", "driver", rt.cfg.DB.Driver)
	return nil
}

// AccountCreateCmd creates an account and prints a fresh API token.
type AccountCreateCmd struct {
	Email string `help:"Account email." required:""`
	Plan  string `help:"Plan tier." enum:"free,plus,pro" default:"free"`
}

func (c *AccountCreateCmd) Run(g *Globals) error {
	rt, err := open(g, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	profile, token, err := rt.app.Accounts.Register(context.Background(), c.Email, plan.ParseTier(c.Plan))
	if err != nil {
		return err
	}
	fmt.Printf("account: %s\nplan:    %s\ntoken:   %s\n", profile.ID, profile.Plan, token)
	fmt.Fprintln(os.Stderr, "The token is shown once. Store it now.")
	return nil
}

// DSNSetCmd stores the postgres DSN in the OS keyring.
type DSNSetCmd struct {
	DSN string `arg:"" help:"Postgres connection string."`
}

func (c *DSNSetCmd) Run(_ *Globals) error {
	if err := config.SetKeyringDSN(c.DSN); err != nil {
		return err
	}
	fmt.Println("stored dsn in keyring")
	return nil
}

// DSNClearCmd removes the keyring DSN.
type DSNClearCmd struct{}

func (c *DSNClearCmd) Run(_ *Globals) error {
	if err := config.ClearKeyringDSN(); err != nil {
		if errors.Is(err, config.ErrNoKeyringDSN) {
			fmt.Println("no dsn stored")
			return nil
		}
		return err
	}
	fmt.Println("removed dsn from keyring")
	return nil
}

// LimitsCmd prints the ceiling table.
type LimitsCmd struct{}

func (c *LimitsCmd) Run(_ *Globals) error {
	rows := make([][]string, 0)
	for _, l := range plan.Limits() {
		bucket := string(l.Bucket)
		if bucket == "" {
			bucket = "-"
		}
		rows = append(rows, []string{string(l.Domain), bucket, strconv.Itoa(l.Ceiling)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DOMAIN", "BUCKET", "FREE CEILING").
		Rows(rows...)
	fmt.Println(t)
	fmt.Println("Plus and pro have no ceilings.")
	return nil
}
