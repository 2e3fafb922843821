// Package mcp serves rule documents to AI agents over the Model Context
// Protocol: listing the rules a project provides and rendering them for a
// specific target platform.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/rulekit/pkg/config"
	"github.com/macropower/rulekit/pkg/log"
	rulesync "github.com/macropower/rulekit/pkg/sync"
	"github.com/macropower/rulekit/pkg/version"
)

const (
	name         = "rulekit"
	instructions = `MCP Server 'rulekit' exposes the rule documents of a project, rendered for a specific AI tool.

Workflow:
1. Use 'list_rules' to see every rule document and whether it applies to this project.
2. Use 'get_rule' with a name from the 'list_rules' output and a target platform to retrieve the rendered rule content.
`
)

// Server implements the MCP server for rulekit.
type Server struct {
	server  *mcp.Server
	address string
	baseDir string
}

// NewServer creates a [Server] rooted at the project directory. An empty
// address serves over stdio.
func NewServer(address, baseDir string) *Server {
	impl := &mcp.Implementation{
		Name:    name,
		Version: version.GetVersion(),
	}

	opts := &mcp.ServerOptions{
		Instructions: instructions,
	}

	s := &Server{
		address: address,
		baseDir: baseDir,
		server:  mcp.NewServer(impl, opts),
	}

	s.registerTools()

	return s
}

// runner builds a fresh pipeline runner. Config and project context are
// re-read per request, so edits between tool calls are observed.
func (s *Server) runner() (*rulesync.Runner, error) {
	cfg, err := config.LoadOrDefault(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	runner, err := rulesync.NewRunner(s.baseDir, cfg, rulesync.WithDryRun())
	if err != nil {
		return nil, fmt.Errorf("create runner: %w", err)
	}

	return runner, nil
}

// Serve starts the MCP server.
func (s *Server) Serve(ctx context.Context) error {
	log.WithContext(ctx).InfoContext(ctx, "starting MCP server",
		slog.String("address", s.address),
		slog.String("dir", s.baseDir),
	)

	if s.address == "" {
		err := s.serveStdio(ctx)
		if err != nil {
			return fmt.Errorf("serve Stdio: %w", err)
		}

		return nil
	}

	err := s.serveHTTP()
	if err != nil {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	return nil
}

func (s *Server) serveHTTP() error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	server := &http.Server{
		Addr:    s.address,
		Handler: handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

func (s *Server) serveStdio(ctx context.Context) error {
	t := mcp.NewLoggingTransport(mcp.NewStdioTransport(), os.Stderr)

	err := s.server.Run(ctx, t)
	if err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}
