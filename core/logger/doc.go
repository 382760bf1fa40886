// Package logger provides a structured logging facility based on Zap.
//
// Every long-running component (scheduler, reconciliation job, provider
// client, portal server) receives a *zap.Logger by injection rather than
// reaching for a global.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (default) or console
//
// # Usage
//
//	log, err := logger.New(&cfg.Log)
//	if err != nil {
//	    return err
//	}
//	log.Info("Found orders to check", zap.Int("count", n))
//
//	// In a portal handler:
//	l := logger.WithRayID(log, c)
//	l.Warn("Rejected token", zap.Error(err))
package logger
