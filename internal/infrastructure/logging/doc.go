// Package logging builds the zap loggers used by the client.
//
// The client itself defaults to a no-op logger; applications pass their own
// *zap.Logger or build one here from LOG_LEVEL / LOG_DEV. At debug level every
// round-trip with the management server is logged with method, URL, headers
// (Authorization masked), bodies, status and duration.
//
// Example Usage:
//
//	logger, err := logging.New(logging.DevelopmentConfig())
//	if err != nil {
//		return err
//	}
//	logger.Debug("request sent", zap.String("url", url))
package logging
