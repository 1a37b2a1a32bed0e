package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init construye el singleton una única vez; las llamadas siguientes son
// no-op. Los mains la invocan apenas cargan la config.
func Init(cfg Config) {
	once.Do(func() {
		instance = build(cfg)
	})
}

// L entrega el singleton. Si nadie llamó Init todavía (tests, código de
// librería suelto) arma uno de desarrollo en nivel info.
func L() *zap.Logger {
	if instance == nil {
		Init(Config{Env: "dev", Level: "info"})
	}
	return instance
}

// Named cuelga un sub-logger con nombre de componente (ej: "mockapi").
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// With fija campos que acompañan todos los logs siguientes; los services
// lo usan para anclar feature y layer.
func With(fields ...zap.Field) *zap.Logger {
	return L().With(fields...)
}

// Sync descarga los buffers pendientes; va en defer al final del main.
func Sync() error {
	if instance != nil {
		return instance.Sync()
	}
	return nil
}
