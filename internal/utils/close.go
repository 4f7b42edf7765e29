package utils

import (
	"io"

	"github.com/MrSnakeDoc/linker/internal/logger"
)

// CloseLogged closes c and logs any error under what.
// Use for defer statements where we want to track close errors.
func CloseLogged(c io.Closer, log logger.Logger, what string) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", what), logger.Error(err))
	}
}
