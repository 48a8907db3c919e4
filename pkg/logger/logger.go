package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger — общий интерфейс логирования приложения.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
}

// ZapLogger реализует Logger поверх go.uber.org/zap.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger создаёт логгер. В production (APP_ENV=production) — JSON,
// иначе — человекочитаемый формат для разработки.
func NewZapLogger() *ZapLogger {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.Must(zap.NewProduction(zap.AddCallerSkip(1)))
	}

	return &ZapLogger{sugar: l.Sugar()}
}

// NewNop возвращает логгер, который ничего не пишет. Для тестов.
func NewNop() *ZapLogger {
	return &ZapLogger{sugar: zap.NewNop().Sugar()}
}

func (z *ZapLogger) Infof(format string, args ...any) {
	z.sugar.Infof(format, args...)
}

func (z *ZapLogger) Warnf(format string, args ...any) {
	z.sugar.Warnf(format, args...)
}

func (z *ZapLogger) Errorf(err error, format string, args ...any) {
	z.sugar.With(zap.Error(err)).Errorf(format, args...)
}

// Sync сбрасывает буферизованные записи. Вызывается при завершении приложения.
func (z *ZapLogger) Sync() error {
	return z.sugar.Sync()
}
