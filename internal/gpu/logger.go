package gpu

import (
	"log/slog"

	"github.com/gogpu/polysketch"
)

// slogger returns the current module logger.
// All logging in internal/gpu goes through this function so that
// polysketch.SetLogger reconfigures it.
func slogger() *slog.Logger { return polysketch.Logger() }
