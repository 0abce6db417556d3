package logging

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/util"
)

// MCPAdapter bridges slog to the printf-style util.Logger the mcp-go
// transports log through.
type MCPAdapter struct {
	logger *slog.Logger
}

var _ util.Logger = (*MCPAdapter)(nil)

// NewMCPAdapter wraps the given slog.Logger. A nil logger falls back to
// slog.Default().
func NewMCPAdapter(logger *slog.Logger) *MCPAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &MCPAdapter{logger: logger}
}

func (a *MCPAdapter) Infof(format string, v ...any) {
	a.logger.Info(fmt.Sprintf(format, v...))
}

func (a *MCPAdapter) Errorf(format string, v ...any) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

// Logger returns the underlying slog.Logger.
func (a *MCPAdapter) Logger() *slog.Logger {
	return a.logger
}
