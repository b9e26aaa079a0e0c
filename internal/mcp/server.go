// Package mcp exposes link suggestion to AI assistants over the Model
// Context Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
)

// Version is the MCP server version.
const Version = "0.1.0"

// ErrMissingSuggestService is returned when the suggest service is not provided.
var ErrMissingSuggestService = errors.New("mcp: suggest service is required")

// Ports aggregates the services the MCP server calls.
type Ports struct {
	Suggest service.SuggestService
	// Catalog is optional; without it the catalog tools are not registered.
	Catalog service.CatalogService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Suggest == nil {
		return ErrMissingSuggestService
	}
	return nil
}

// Server is the MCP server.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "internal-link-suggester",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over streamable HTTP on addr.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Shutdown(context.Background())
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
