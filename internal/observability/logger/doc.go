// Package logger provides a singleton Zap logger with context-based scoping.
//
// # Design Decisions
//
//   - Singleton: una sola instancia global inicializada con Init().
//   - Context Scoping: cada comando/acción puede llevar su propio logger "scoped"
//     con campos adicionales (feature, op) sin crear un nuevo core.
//   - Environments: "dev" usa consola con colores, "prod" usa JSON.
//   - Levels: debug, info, warn, error (configurable via LOG_LEVEL).
//
// # Usage
//
// Inicialización (una vez en main.go):
//
//	logger.Init(logger.Config{
//	    Env:   os.Getenv("APP_ENV"),   // "dev" o "prod"
//	    Level: os.Getenv("LOG_LEVEL"), // "debug", "info", "warn", "error"
//	})
//	defer logger.L().Sync()
//
// En servicios de feature (con contexto):
//
//	log := logger.From(ctx)
//	log.Info("clinics fetched", logger.Count(len(items)))
//
// Sin contexto (fallback al singleton):
//
//	logger.L().Info("cli started")
package logger
