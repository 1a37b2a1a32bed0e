package logger

import (
	"context"

	"go.uber.org/zap"
)

// S entrega la variante printf-style del singleton. La usa código utilitario
// (el middleware del mock) donde armar campos tipados no aporta nada.
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// SFrom es S pero respetando el logger scoped que viaje en el contexto.
func SFrom(ctx context.Context) *zap.SugaredLogger {
	return From(ctx).Sugar()
}
