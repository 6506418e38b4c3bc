package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/averycrespi/calculatte-mcp/internal/engine"
	"github.com/averycrespi/calculatte-mcp/internal/metrics"
	"github.com/averycrespi/calculatte-mcp/internal/tools"
	"github.com/averycrespi/calculatte-mcp/internal/transport"
	"github.com/averycrespi/calculatte-mcp/pkg/project"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

var _ types.Server = &CalculatteServer{}

const instructions = "Numerical calculus tools. Functions are JavaScript expressions in x " +
	"(\"x^2\", \"sin(x) / x\", \"x < 0 ? -x : x\"). Results are approximations rounded to the " +
	"configured decimal places; use get_accuracy and set_accuracy to inspect or change them. " +
	"A result of \"NaN\" means the derivative or limit does not exist."

// CalculatteServer represents the calculatte MCP server
type CalculatteServer struct {
	mcpServer *server.MCPServer
	engines   *engine.Manager
	metrics   *metrics.Metrics
	config    *types.Config
	logger    *zap.Logger

	registered []tools.Tool
}

// NewCalculatteServer creates a server with every calculus tool registered
func NewCalculatteServer(config *types.Config, logger *zap.Logger) (*CalculatteServer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	engines, err := engine.NewManager(config.Accuracy.Engine(), logger.Named("engine"))
	if err != nil {
		return nil, err
	}
	m := metrics.New()

	middleware := tools.Middleware(tools.MiddlewareConfig{
		Logger:  logger.Named("tools"),
		Metrics: m,
		Limiter: tools.NewLimiter(config.RateLimit.Enabled, config.RateLimit.RequestsPerSecond, config.RateLimit.Burst),
		Timeout: config.Server.CallTimeout,
	})
	mcpServer := server.NewMCPServer(project.Name, project.Version,
		server.WithToolCapabilities(false),
		server.WithToolHandlerMiddleware(middleware),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	s := &CalculatteServer{
		mcpServer: mcpServer,
		engines:   engines,
		metrics:   m,
		config:    config,
		logger:    logger,
	}
	s.registerTools()
	return s, nil
}

func (s *CalculatteServer) registerTools() {
	s.registered = tools.NewTools(s.engines, s.metrics)
	for _, tool := range s.registered {
		s.mcpServer.AddTool(tool.GetTool(), tool.Handle)
	}
}

// MCPServer returns the underlying MCP server
func (s *CalculatteServer) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Engines returns the engine manager shared by the tools
func (s *CalculatteServer) Engines() *engine.Manager {
	return s.engines
}

// Metrics returns the server's Prometheus collectors
func (s *CalculatteServer) Metrics() *metrics.Metrics {
	return s.metrics
}

// Serve runs the configured transport, and the metrics endpoint when one is configured,
// until ctx is cancelled
func (s *CalculatteServer) Serve(ctx context.Context) error {
	t, err := transport.New(s.config.Server, s.logger.Named("transport"))
	if err != nil {
		return fmt.Errorf("failed to create transport: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	metricsErr := make(chan error, 1)
	if addr := s.config.Metrics.Address; addr != "" {
		go func() {
			metricsErr <- s.metrics.Serve(ctx, addr, s.logger.Named("metrics"))
		}()
	} else {
		metricsErr <- nil
	}

	s.logger.Info("Starting calculatte MCP server",
		zap.String("version", project.Version),
		zap.String("transport", s.config.Server.Transport),
	)
	serveErr := t.Serve(ctx, s.mcpServer)
	cancel()

	if err := errors.Join(serveErr, <-metricsErr); err != nil {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}
	s.logger.Info("Calculatte MCP server stopped")
	return nil
}

// Call runs a single tool call through the same middleware the transports use
func (s *CalculatteServer) Call(ctx context.Context, name string, arguments map[string]any) (*mcp.CallToolResult, error) {
	if arguments == nil {
		arguments = map[string]any{}
	}

	message, err := json.Marshal(map[string]any{
		"jsonrpc": mcp.JSONRPC_VERSION,
		"id":      1,
		"method":  string(mcp.MethodToolsCall),
		"params": map[string]any{
			"name":      name,
			"arguments": arguments,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool call: %w", err)
	}

	switch response := s.mcpServer.HandleMessage(ctx, message).(type) {
	case mcp.JSONRPCResponse:
		result, ok := response.Result.(mcp.CallToolResult)
		if !ok {
			return nil, fmt.Errorf("unexpected tool call result %T", response.Result)
		}
		return &result, nil
	case mcp.JSONRPCError:
		return nil, fmt.Errorf("tool call failed: %s", response.Error.Message)
	default:
		return nil, fmt.Errorf("unexpected tool call response %T", response)
	}
}

// Tools returns the definitions of the registered tools in registration order
func (s *CalculatteServer) Tools() []mcp.Tool {
	defs := make([]mcp.Tool, len(s.registered))
	for i, tool := range s.registered {
		defs[i] = tool.GetTool()
	}
	return defs
}

// ToolNames returns the names of the registered tools in registration order
func (s *CalculatteServer) ToolNames() []string {
	names := make([]string, len(s.registered))
	for i, tool := range s.Tools() {
		names[i] = tool.Name
	}
	return names
}

// ResultText joins the text content of a tool result
func ResultText(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}
