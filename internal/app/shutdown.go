package app

import (
	"github.com/aatumaykin/rapture/internal/logger"
)

// Close flushes metrics to the configured textfile.
func (a *App) Close() error {
	if !a.initialized {
		return nil
	}
	path := a.config.Metrics.TextfilePath
	if err := a.metrics.WriteTextfile(path); err != nil {
		a.logger.Error("Failed to export metrics", err, logger.Field{Key: "path", Value: path})
		return err
	}
	return nil
}
