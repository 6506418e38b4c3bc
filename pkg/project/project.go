package project

// Name is the MCP server name reported during initialization
const Name = "calculatte-mcp"

// Version is overridden at build time with -ldflags "-X .../pkg/project.Version=..."
var Version = "0.1.0"
