package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linker/internal/logger"
)

type reloadResponse struct {
	Status string `json:"status"`
}

// Reload triggers a Homepage import without waiting for it
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ImportTrigger == nil {
			writeError(w, d.Logger, http.StatusNotFound, "import is not configured")
			return
		}

		select {
		case d.ImportTrigger <- struct{}{}:
			d.Logger.Info("manual import triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, d.Logger, http.StatusAccepted, reloadResponse{Status: "import triggered"})
		default:
			d.Logger.Warn("import already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, d.Logger, http.StatusTooManyRequests, reloadResponse{Status: "import already pending, please wait"})
		}
	}
}
