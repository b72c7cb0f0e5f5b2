package utils

import (
	"io"

	"github.com/MrSnakeDoc/cocktails/internal/logger"
)

// Close closes c and ignores any error.
// Use for best-effort cleanup in defer where error handling is not critical.
func Close(c io.Closer) {
	_ = c.Close()
}

// CloseLogged closes c and logs any error under name.
// Use on shutdown paths where a failed close is worth reporting.
func CloseLogged(c io.Closer, name string, log logger.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to close",
			logger.String("component", name),
			logger.Error(err))
		return
	}
	log.Debug("closed cleanly", logger.String("component", name))
}
