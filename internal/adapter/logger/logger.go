package logger

import (
	"github.com/MikeRez0/shoptrack/internal/adapter/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func NewLogger(conf *config.App) *zap.Logger {
	lvl, err := zap.ParseAtomicLevel(conf.LogLevel)
	if err != nil {
		zap.L().Error("error parsing log level", zap.Error(err))
		return nil
	}

	var logger *zap.Logger
	if conf.Mode == config.AppModeDevelop {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = lvl
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

		logger = zap.Must(cfg.Build())
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = lvl
		logger = zap.Must(cfg.Build())
	}

	if conf.LogFile == "" {
		return logger
	}

	// File output is always JSON and rotated.
	file := zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.LogFile,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
	})
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), file, lvl)

	return logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	}))
}
