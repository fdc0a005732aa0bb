// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log         *zap.Logger
	AppLog      *zap.SugaredLogger
	InitLog     *zap.SugaredLogger
	CfgLog      *zap.SugaredLogger
	CtxLog      *zap.SugaredLogger
	NgapLog     *zap.SugaredLogger
	NasLog      *zap.SugaredLogger
	UtilLog     *zap.SugaredLogger
	atomicLevel zap.AtomicLevel

	// per subsystem levels, keyed by the names used in the logging section
	subsystemLevels = map[string]zap.AtomicLevel{}
	levelsMu        sync.RWMutex

	// every category writes to sink; Configure changes where it points
	sink        = &switchSink{}
	colorLevels atomic.Bool
)

// switchSink is a WriteSyncer whose destination can be replaced while
// loggers are writing to it.
type switchSink struct {
	mu    sync.Mutex
	out   zapcore.WriteSyncer
	close func()
}

func (s *switchSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}

func (s *switchSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Sync()
}

// swap installs out and closes the previous destination once no write is
// in progress.
func (s *switchSink) swap(out zapcore.WriteSyncer, closeFn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.out != nil {
		// stdout and stderr fail to sync on some platforms
		_ = s.out.Sync()
	}
	previous := s.close
	s.out, s.close = out, closeFn
	if previous != nil {
		previous()
	}
}

func init() {
	atomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	ws, closeFn, err := zap.Open("stdout")
	if err != nil {
		panic(err)
	}
	sink.swap(ws, closeFn)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.LevelKey = "level"
	encCfg.EncodeLevel = encodeLevel
	encCfg.CallerKey = "caller"
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.MessageKey = "message"
	encCfg.StacktraceKey = ""
	encoder := zapcore.NewConsoleEncoder(encCfg)

	log = zap.New(zapcore.NewCore(encoder, sink, atomicLevel), zap.AddCaller(), zap.ErrorOutput(sink))

	// Assign sugared loggers for each category
	AppLog = log.Sugar().With("component", "AMF", "category", "App")
	InitLog = log.Sugar().With("component", "AMF", "category", "Init")
	CfgLog = log.Sugar().With("component", "AMF", "category", "CFG")
	CtxLog = log.Sugar().With("component", "AMF", "category", "Context")
	NgapLog = subsystemLogger(encoder, "ngap").With("component", "AMF", "category", "NGAP")
	NasLog = subsystemLogger(encoder, "nas").With("component", "AMF", "category", "NAS")
	UtilLog = subsystemLogger(encoder, "util").With("component", "AMF", "category", "Util")
}

func encodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if colorLevels.Load() {
		zapcore.CapitalColorLevelEncoder(level, enc)
		return
	}
	zapcore.CapitalLevelEncoder(level, enc)
}

// subsystemLogger builds a logger sharing the base encoder but gated by its own level
func subsystemLogger(encoder zapcore.Encoder, name string) *zap.SugaredLogger {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	levelsMu.Lock()
	subsystemLevels[name] = level
	levelsMu.Unlock()
	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core, zap.AddCaller()).Sugar()
}

// Configure sends all categories to output and turns level colors on or
// off. output is CONSOLE (or empty) for stdout, STDERR, or a file path.
// It is safe to call while other goroutines log.
func Configure(output string, color bool) error {
	path := "stdout"
	switch {
	case output == "" || strings.EqualFold(output, "CONSOLE"):
	case strings.EqualFold(output, "STDERR"):
		path = "stderr"
	case strings.EqualFold(output, "SYSLOG"):
		return errors.Errorf("log output [%s] is not supported", output)
	default:
		path = output
	}
	ws, closeFn, err := zap.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open log output %s", path)
	}
	sink.swap(ws, closeFn)
	colorLevels.Store(color)
	return nil
}

// GetLogger returns the base zap.Logger
func GetLogger() *zap.Logger {
	return log
}

// SetLogLevel sets the log level (panic|fatal|error|warn|info|debug)
func SetLogLevel(level zapcore.Level) {
	InitLog.Infoln("set log level:", level)
	atomicLevel.SetLevel(level)
}

// SetSubsystemLevel changes the level of a subsystem logger. It reports
// false when no logger in this process is registered under that name.
func SetSubsystemLevel(name string, level zapcore.Level) bool {
	levelsMu.RLock()
	lvl, ok := subsystemLevels[name]
	levelsMu.RUnlock()
	if !ok {
		return false
	}
	lvl.SetLevel(level)
	return true
}

// SubsystemLevel returns the current level of a registered subsystem logger.
func SubsystemLevel(name string) (zapcore.Level, bool) {
	levelsMu.RLock()
	defer levelsMu.RUnlock()
	lvl, ok := subsystemLevels[name]
	if !ok {
		return zapcore.InfoLevel, false
	}
	return lvl.Level(), true
}
