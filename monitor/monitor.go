package monitor

import (
	"bytes"
	"crypto/subtle"
	"html/template"
	"net/http"
	"os"
	"strconv"

	"whitepaper-portal-api/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultTailLines = 500

// monitorCSP replaces the site-wide policy on the monitor page, which carries
// its style and script inline.
const monitorCSP = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'"

var monitorPage = template.Must(template.New("monitor").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>Portal Monitor</title>
  <style>
    body { background: #0f0f0f; color: #e0e0e0; font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; padding: 20px; }
    .container { max-width: 1200px; margin: 0 auto; }
    #status { font-size: 1.25rem; font-weight: 600; margin-bottom: 1rem; }
    #logs { background: rgba(0, 0, 0, 0.3); padding: 1.5rem; border-radius: 12px; max-height: 70vh; overflow-y: auto;
      white-space: pre-wrap; font-family: 'Monaco', 'Consolas', monospace; font-size: 0.875rem; line-height: 1.6; }
    button { padding: 0.5rem 1rem; border: none; border-radius: 8px; cursor: pointer; margin-bottom: 1rem; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Whitepaper Portal Monitor</h1>
    <div id="status">Status: checking...</div>
    <button onclick="toggleLive()" id="toggleBtn">Pause Live Logs</button>
    <pre id="logs">Loading logs...</pre>
  </div>
  <script>
    let liveLogs = true;
    const token = {{.Token}};
    const logsElement = document.getElementById('logs');
    const statusElement = document.getElementById('status');

    function fetchStatus() {
      fetch('/api/v1/health')
        .then(res => res.json())
        .then(data => { statusElement.textContent = 'Status: ' + data.status; })
        .catch(() => { statusElement.textContent = 'Status: offline'; });
    }

    function fetchLogs() {
      if (!liveLogs) return;
      fetch('/logs?token=' + encodeURIComponent(token))
        .then(res => res.text())
        .then(data => {
          logsElement.textContent = data;
          logsElement.scrollTop = logsElement.scrollHeight;
        });
    }

    function toggleLive() {
      liveLogs = !liveLogs;
      document.getElementById('toggleBtn').textContent = liveLogs ? 'Pause Live Logs' : 'Resume Live Logs';
    }

    fetchStatus();
    fetchLogs();
    setInterval(fetchStatus, 5000);
    setInterval(fetchLogs, 5000);
  </script>
</body>
</html>`))

// RegisterMonitorRoutes mounts the token-protected log viewer. Nothing is
// mounted when LOGS_TOKEN is unset.
func RegisterMonitorRoutes(router *gin.Engine) {
	if config.Cfg.LogsToken == "" {
		config.Logger.Info("log viewer disabled: LOGS_TOKEN not set")
		return
	}
	router.GET("/logs", requireToken, serveLogs)
	router.GET("/monitor", requireToken, serveMonitorPage)
}

func requireToken(c *gin.Context) {
	given := c.Query("token")
	if subtle.ConstantTimeCompare([]byte(given), []byte(config.Cfg.LogsToken)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Next()
}

func serveLogs(c *gin.Context) {
	lines := defaultTailLines
	if raw := c.Query("lines"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			lines = n
		}
	}

	logData, err := os.ReadFile(config.LogFilePath())
	if err != nil {
		config.Logger.Warn("read log file failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read log"})
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", tail(logData, lines))
}

func serveMonitorPage(c *gin.Context) {
	var buf bytes.Buffer
	if err := monitorPage.Execute(&buf, gin.H{"Token": config.Cfg.LogsToken}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to render monitor"})
		return
	}
	c.Header("Content-Security-Policy", monitorCSP)
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// tail returns the last n lines of data.
func tail(data []byte, n int) []byte {
	end := len(data)
	if end > 0 && data[end-1] == '\n' {
		end--
	}
	seen := 0
	for i := end - 1; i >= 0; i-- {
		if data[i] == '\n' {
			seen++
			if seen == n {
				return data[i+1:]
			}
		}
	}
	return data
}
