// Package mcp exposes a panel as an MCP server so agent tooling can
// inspect and drive the option list over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dwilhelm/optlist"
	"github.com/dwilhelm/optlist/pkg/domain"
)

// PanelSnapshot aligns with the HTTP adapter's panel payload and gives
// structured tools a common shape.
type PanelSnapshot struct {
	Entries []domain.View `json:"entries" jsonschema_description:"All entries in panel order"`
	Links   []domain.Link `json:"links,omitempty" jsonschema_description:"Implication links between entries"`
}

// Panel is the surface of the option list the MCP server drives.
// *optlist.Panel satisfies it.
type Panel interface {
	Entries() []domain.View
	Links() []domain.Link
	SetChecked(key string, checked bool) error
	Load() error
	Commit(ctx context.Context) error
	SaveDraft(ctx context.Context, name string) error
	RestoreDraft(ctx context.Context, name string) error
	DeleteDraft(ctx context.Context, name string) error
	Drafts(ctx context.Context) ([]string, error)
}

var _ Panel = (*optlist.Panel)(nil)

// Server wraps a panel and exposes it as an MCP Server. The panel is
// single-goroutine, so every tool call runs under the server's mutex.
type Server struct {
	mu        sync.Mutex
	panel     Panel
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance for a panel.
func NewServer(panel Panel) *Server {
	s := &Server{
		panel:     panel,
		mcpServer: server.NewMCPServer("optlist-mcp", strings.TrimSpace(optlist.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: get_panel
	getTool := mcp.NewTool("get_panel",
		mcp.WithDescription("Read the full panel: every entry with its displayed state plus the implication links."),
		mcp.WithOutputSchema[PanelSnapshot](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetPanel))

	// TOOL: list_options
	s.mcpServer.AddTool(mcp.NewTool("list_options",
		mcp.WithDescription("List every entry with its displayed state as JSON."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		entries := s.panel.Entries()
		s.mu.Unlock()

		jsonBytes, _ := json.Marshal(entries)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: toggle_option
	toggleTool := mcp.NewTool("toggle_option",
		mcp.WithDescription("Set an entry's checkbox and propagate implication links. Fails on locked or forced entries."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Entry key, e.g. security/lock_on_minimize")),
		mcp.WithBoolean("checked", mcp.Required(), mcp.Description("Desired checkbox state")),
		mcp.WithOutputSchema[PanelSnapshot](),
	)
	s.mcpServer.AddTool(toggleTool, mcp.NewStructuredToolHandler(s.handleToggle))

	// TOOL: load_options
	loadTool := mcp.NewTool("load_options",
		mcp.WithDescription("Re-read all bound configuration values into the panel, discarding unsaved toggles."),
		mcp.WithOutputSchema[PanelSnapshot](),
	)
	s.mcpServer.AddTool(loadTool, mcp.NewStructuredToolHandler(s.handleLoad))

	// TOOL: commit_options
	s.mcpServer.AddTool(mcp.NewTool("commit_options",
		mcp.WithDescription("Write the displayed states back to their bound configuration values. Locked entries are skipped."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		err := s.panel.Commit(ctx)
		s.mu.Unlock()

		if err != nil {
			if failures, ok := domain.CommitFailures(err); ok {
				parts := make([]string, 0, len(failures))
				for _, f := range failures {
					parts = append(parts, fmt.Sprintf("%s: %v", f.Key, f.Err))
				}
				return mcp.NewToolResultError("commit partially failed: " + strings.Join(parts, "; ")), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("commit failed: %v", err)), nil
		}
		return mcp.NewToolResultText("committed"), nil
	})

	// TOOL: save_draft
	s.mcpServer.AddTool(mcp.NewTool("save_draft",
		mcp.WithDescription("Park the current displayed states under a draft name without committing them."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Draft name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		s.mu.Lock()
		err = s.panel.SaveDraft(ctx, name)
		s.mu.Unlock()

		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("save draft failed: %v", err)), nil
		}
		return mcp.NewToolResultText("draft saved: " + name), nil
	})

	// TOOL: restore_draft
	restoreTool := mcp.NewTool("restore_draft",
		mcp.WithDescription("Apply a parked draft's states to the panel. Locked entries keep their current state."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Draft name")),
		mcp.WithOutputSchema[PanelSnapshot](),
	)
	s.mcpServer.AddTool(restoreTool, mcp.NewStructuredToolHandler(s.handleRestoreDraft))

	// TOOL: list_drafts
	s.mcpServer.AddTool(mcp.NewTool("list_drafts",
		mcp.WithDescription("List the names of all parked drafts."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.panel.Drafts(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list drafts failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(ids)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: delete_draft
	s.mcpServer.AddTool(mcp.NewTool("delete_draft",
		mcp.WithDescription("Delete a parked draft."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Draft name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := s.panel.DeleteDraft(ctx, name); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("delete draft failed: %v", err)), nil
		}
		return mcp.NewToolResultText("draft deleted: " + name), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleGetPanel(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PanelSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PanelSnapshot{Entries: s.panel.Entries(), Links: s.panel.Links()}, nil
}

func (s *Server) handleToggle(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PanelSnapshot, error) {
	key, _ := args["key"].(string)
	if key == "" {
		return PanelSnapshot{}, fmt.Errorf("missing entry key")
	}
	checked, _ := args["checked"].(bool)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.panel.SetChecked(key, checked); err != nil {
		return PanelSnapshot{}, fmt.Errorf("toggle failed: %w", err)
	}
	return PanelSnapshot{Entries: s.panel.Entries()}, nil
}

func (s *Server) handleLoad(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PanelSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.panel.Load(); err != nil {
		return PanelSnapshot{}, fmt.Errorf("load failed: %w", err)
	}
	return PanelSnapshot{Entries: s.panel.Entries()}, nil
}

func (s *Server) handleRestoreDraft(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PanelSnapshot, error) {
	name, _ := args["name"].(string)
	if name == "" {
		return PanelSnapshot{}, fmt.Errorf("missing draft name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.panel.RestoreDraft(ctx, name); err != nil {
		return PanelSnapshot{}, fmt.Errorf("restore draft failed: %w", err)
	}
	return PanelSnapshot{Entries: s.panel.Entries()}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: optlist://panel
	s.mcpServer.AddResource(mcp.NewResource("optlist://panel", "Current Panel State",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		s.mu.Lock()
		snapshot := PanelSnapshot{Entries: s.panel.Entries(), Links: s.panel.Links()}
		s.mu.Unlock()

		jsonBytes, err := json.Marshal(snapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal panel: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "optlist://panel",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
