package config

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ResolveBaseURL picks the upstream DanNet endpoint following strict
// precedence: explicit base URL > forced local > local auto-probe > remote.
func (c *Config) ResolveBaseURL(log *zap.SugaredLogger) string {
	if c.Server.BaseURL != "" {
		log.Infow("Using explicitly configured base URL", "base_url", c.Server.BaseURL)
		return c.Server.BaseURL
	}

	if c.Server.Local {
		log.Infow("Local mode enabled, using local DanNet instance", "base_url", LocalURL)
		return LocalURL
	}

	return detectAvailableServer(log, time.Duration(c.Server.ProbeTimeoutSeconds)*time.Second)
}

// detectAvailableServer probes the local instance with a short timeout and
// falls back to the remote deployment. Any response below 500, including a
// 404 on the root path, counts as a running server.
func detectAvailableServer(log *zap.SugaredLogger, timeout time.Duration) string {
	probe := &http.Client{Timeout: timeout}
	resp, err := probe.Get(LocalURL)
	if err == nil {
		defer resp.Body.Close()
		if resp.StatusCode < http.StatusInternalServerError {
			log.Infow("Local DanNet instance detected", "base_url", LocalURL)
			return LocalURL
		}
	} else {
		log.Debugw("Local DanNet instance not available", "base_url", LocalURL, "error", err)
	}

	log.Infow("Using remote DanNet server", "base_url", RemoteURL)
	return RemoteURL
}
