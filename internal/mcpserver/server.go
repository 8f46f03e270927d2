// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the journal resolution tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/protesilaos/denote-journal/internal/apperr"
	"github.com/protesilaos/denote-journal/internal/journal"
	"github.com/protesilaos/denote-journal/internal/journalservice"
)

// listEntriesLimit caps the list_entries tool. The tool takes no paging
// parameters, so the cap is generous and advertised in its description.
const listEntriesLimit = 500

// Server wraps the MCP server with journal tools.
type Server struct {
	mcp *server.MCPServer
	svc *journalservice.Service
}

// New creates a new MCP server with all journal tools registered.
func New(svc *journalservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"denote-journal",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("resolve_journal_entry",
		mcp.WithDescription("Locate the journal entry for a calendar date, creating it when absent. "+
			"Returns the outcome (found, created, ambiguous) and the entry path or candidate paths."),
		mcp.WithString("date", mcp.Description("Optional date (e.g. 2023-10-19); empty means today")),
	), s.resolveEntry)

	s.mcp.AddTool(mcp.NewTool("read_entry",
		mcp.WithDescription("Read the full content of a journal entry."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the entry (e.g. journal/20231019T204900--thursday__journal.org)")),
	), s.readEntry)

	s.mcp.AddTool(mcp.NewTool("list_entries",
		mcp.WithDescription("List indexed entries, optionally filtered by keyword. "+
			"Returns at most 500 paths, newest first."),
		mcp.WithString("keyword", mcp.Description("Optional keyword filter (e.g. journal)")),
	), s.listEntries)

	s.mcp.AddTool(mcp.NewTool("search_entries",
		mcp.WithDescription("Full-text search through entry content and titles."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchEntries)

	s.mcp.AddTool(mcp.NewTool("get_backlinks",
		mcp.WithDescription("List all entries that link to the given identifier."),
		mcp.WithString("identifier", mcp.Required(), mcp.Description("Target entry identifier (e.g. 20231019T204900)")),
	), s.getBacklinks)

	s.mcp.AddTool(mcp.NewTool("classify_filename",
		mcp.WithDescription("Report whether a bare file name is a valid journal entry name "+
			"under the configured keyword set and naming grammar."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Bare file name to classify")),
	), s.classifyFilename)

	s.mcp.AddTool(mcp.NewTool("get_naming_contract",
		mcp.WithDescription("Returns the canonical file-naming grammar journal entries follow. "+
			"Call this before constructing entry names by hand."),
	), s.getNamingContract)

	// Resource: file-naming contract.
	s.mcp.AddResource(
		mcp.NewResource("denote://file-naming", "File Naming Contract",
			mcp.WithResourceDescription("Canonical file-naming grammar that all entries follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNamingContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) resolveEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := ""
	if d, err := req.RequireString("date"); err == nil {
		date = d
	}
	res, err := s.svc.Resolve(ctx, date)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidDate) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("resolve failed: %v", err)), nil
	}
	out := map[string]any{"outcome": string(res.Outcome)}
	switch res.Outcome {
	case journal.OutcomeAmbiguous:
		out["candidates"] = res.Candidates
	default:
		out["path"] = res.Path
	}
	payload, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) readEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := s.svc.GetEntry(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(entry.Content), nil
}

func (s *Server) listEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword := ""
	if k, err := req.RequireString("keyword"); err == nil {
		keyword = k
	}
	items, _, err := s.svc.ListEntries(ctx, listEntriesLimit, 0, keyword, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var paths []string
	for _, it := range items {
		paths = append(paths, it.Path)
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) searchEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getBacklinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	identifier, err := req.RequireString("identifier")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	paths, err := s.svc.Backlinks(ctx, identifier)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) classifyFilename(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.svc.IsJournalFilename(name) {
		return mcp.NewToolResultText("journal"), nil
	}
	return mcp.NewToolResultText("not-journal"), nil
}

func (s *Server) getNamingContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(NamingContract), nil
}

func (s *Server) readNamingContractResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "denote://file-naming",
			MIMEType: "text/markdown",
			Text:     NamingContract,
		},
	}, nil
}
