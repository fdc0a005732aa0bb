// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	amfContext "github.com/omec-project/amfcfg/context"
	"github.com/omec-project/amfcfg/factory"
	"github.com/omec-project/amfcfg/logger"
	"github.com/omec-project/amfcfg/metrics"
	"github.com/omec-project/amfcfg/util"
	aperLogger "github.com/omec-project/aper/logger"
	ngapLogger "github.com/omec-project/ngap/logger"
	utilLogger "github.com/omec-project/util/logger"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sys/unix"
)

// AMF owns the process wide configuration and the lock guarding it.
type AMF struct {
	cfgPath     string
	watch       bool
	metricsAddr string

	lock    sync.RWMutex
	Config  *amfContext.AMFConfig
	metrics *metrics.Collector

	// serializes SIGHUP and file watcher reloads
	reloadMu sync.Mutex

	// log output currently in use
	logOutput *amfContext.LogConfig

	statsMu     sync.Mutex
	statsPeriod time.Duration
	stats       *amfContext.Timer
}

var amfCli = []cli.Flag{
	cli.StringFlag{
		Name:     "cfg",
		Usage:    "amf config file",
		Required: true,
	},
	cli.BoolFlag{
		Name:  "watch",
		Usage: "reload the configuration when the file changes",
	},
	cli.StringFlag{
		Name:  "metrics",
		Usage: "address to serve configuration metrics on, e.g. :9089",
	},
}

func (*AMF) GetCliCmd() (flags []cli.Flag) {
	return amfCli
}

// Initialize loads config and sets log levels
func (amf *AMF) Initialize(c *cli.Context) error {
	amf.watch = c.Bool("watch")
	amf.metricsAddr = c.String("metrics")
	return amf.Load(c.String("cfg"))
}

// Load reads the configuration file and builds the configuration from the
// compiled-in defaults. Any error is fatal for the caller.
func (amf *AMF) Load(cfgPath string) error {
	if cfgPath == "" {
		return factory.ErrNoConfigFile
	}
	absPath, err := filepath.Abs(cfgPath)
	if err != nil {
		logger.CfgLog.Errorln(err)
		return err
	}
	amf.cfgPath = absPath
	if amf.metrics == nil {
		amf.metrics = metrics.NewCollector()
	}
	amf.Config = amfContext.NewAMFConfig(&amf.lock)
	if err := amf.loadFile(); err != nil {
		return err
	}
	amf.setLogLevel()
	return nil
}

// Reload re-reads the configuration file on top of the running
// configuration. On failure the running configuration stays in place.
func (amf *AMF) Reload() error {
	amf.reloadMu.Lock()
	defer amf.reloadMu.Unlock()
	logger.CfgLog.Infof("reloading configuration from %s", amf.cfgPath)
	if err := amf.loadFile(); err != nil {
		logger.CfgLog.Errorf("reload failed, keeping running configuration: %+v", err)
		return err
	}
	amf.setLogLevel()
	return nil
}

func (amf *AMF) loadFile() (err error) {
	var warnings []util.Warning
	defer func() {
		amf.metrics.ObserveLoad(err, len(warnings), amf.Config.ServedTai())
	}()

	// the file is read and parsed before the configuration lock is taken
	root, err := factory.InitConfigFactory(amf.cfgPath)
	if err != nil {
		return err
	}
	if err = factory.CheckConfigVersion(root); err != nil {
		return err
	}
	warnings, err = util.InitAMFContext(amf.Config, root)
	if err != nil {
		return err
	}
	if len(warnings) > 0 {
		logger.CfgLog.Warnf("configuration loaded with %d warnings", len(warnings))
	}
	return nil
}

// setLogLevel configures log levels for all modules
func (amf *AMF) setLogLevel() {
	logCfg := amf.Config.Snapshot().Log
	amf.setLogOutput(logCfg)
	setModuleLogLevel(moduleSetting(logCfg, "amfApp"), logger.InitLog, logger.SetLogLevel, "AMF")
	setModuleLogLevel(moduleSetting(logCfg, "nas"), logger.NasLog, subsystemSetter("nas"), "NAS")
	setModuleLogLevel(moduleSetting(logCfg, "util"), logger.UtilLog, subsystemSetter("util"), "Util")
	setModuleLogLevel(moduleSetting(logCfg, "ngap"), logger.NgapLog, func(level zapcore.Level) {
		logger.SetSubsystemLevel("ngap", level)
		ngapLogger.SetLogLevel(level)
	}, "NGAP")
	setModuleLogLevel(&utilLogger.LogSetting{DebugLevel: asn1Level(logCfg.Asn1Verbosity).String()},
		logger.InitLog, aperLogger.SetLogLevel, "Aper")
}

func (amf *AMF) setLogOutput(logCfg amfContext.LogConfig) {
	if amf.logOutput != nil && amf.logOutput.Output == logCfg.Output && amf.logOutput.Color == logCfg.Color {
		return
	}
	if logCfg.Output == "" && !logCfg.Color && amf.logOutput == nil {
		return
	}
	if err := logger.Configure(logCfg.Output, logCfg.Color); err != nil {
		logger.InitLog.Warnf("keeping current log output: %+v", err)
		return
	}
	amf.logOutput = &logCfg
	logger.InitLog.Infof("log output [%s] color %t", logCfg.Output, logCfg.Color)
}

func moduleSetting(logCfg amfContext.LogConfig, subsystem string) *utilLogger.LogSetting {
	level, ok := logCfg.Levels[subsystem]
	if !ok {
		return nil
	}
	return &utilLogger.LogSetting{DebugLevel: level.String()}
}

func subsystemSetter(name string) func(zapcore.Level) {
	return func(level zapcore.Level) {
		logger.SetSubsystemLevel(name, level)
	}
}

// asn1Level maps the ASN.1 verbosity onto the aper codec logger
func asn1Level(verbosity uint8) zapcore.Level {
	switch verbosity {
	case 1:
		return zapcore.InfoLevel
	case 2:
		return zapcore.DebugLevel
	}
	return zapcore.ErrorLevel
}

// setModuleLogLevel is a helper to reduce repetition in log level setup
func setModuleLogLevel(moduleCfg *utilLogger.LogSetting, logObj *zap.SugaredLogger, setLevel func(zapcore.Level), moduleName string) {
	if moduleCfg == nil {
		logObj.Infof("%s Log level not set. Default set to [info] level", moduleName)
		setLevel(zap.InfoLevel)
		return
	}
	if moduleCfg.DebugLevel != "" {
		level, err := zapcore.ParseLevel(moduleCfg.DebugLevel)
		if err != nil {
			logObj.Warnf("%s Log level [%s] is invalid, set to [info] level", moduleName, moduleCfg.DebugLevel)
			setLevel(zap.InfoLevel)
		} else {
			logObj.Infof("%s Log level is set to [%s] level", moduleName, level)
			setLevel(level)
		}
	} else {
		logObj.Warnf("%s Log level not set. Default set to [info] level", moduleName)
		setLevel(zap.InfoLevel)
	}
}

// Start serves reload requests until SIGINT or SIGTERM
func (amf *AMF) Start() {
	logger.InitLog.Infoln("server started")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	amf.logNgSetupView()

	amf.startStatistics(ctx)
	defer amf.stopStatistics()

	var wg sync.WaitGroup
	if amf.watch {
		watcher, err := NewConfigWatcher(amf.cfgPath, DefaultWatchDebounce)
		if err != nil {
			logger.InitLog.Errorf("start configuration watcher failed: %+v", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer util.RecoverWithLog(logger.InitLog, "configuration watcher")
				watcher.Run(ctx, func() {
					amf.reload(ctx)
				})
			}()
			defer func() {
				if err := watcher.Close(); err != nil {
					logger.InitLog.Warnf("close configuration watcher: %+v", err)
				}
			}()
		}
	}

	var server *http.Server
	if amf.metricsAddr != "" {
		server = &http.Server{Addr: amf.metricsAddr, Handler: amf.metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer util.RecoverWithLog(logger.InitLog, "metrics server")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.InitLog.Errorf("metrics server failed: %+v", err)
			}
		}()
		logger.InitLog.Infof("metrics served on %s", amf.metricsAddr)
	}
	logger.InitLog.Infoln("AMF running")

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt, unix.SIGTERM, unix.SIGHUP)
	defer signal.Stop(signalChannel)
	for sig := range signalChannel {
		if sig == unix.SIGHUP {
			amf.reload(ctx)
			continue
		}
		logger.InitLog.Infof("received %s, shutting down", sig)
		break
	}

	cancel()
	if server != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.InitLog.Warnf("metrics server shutdown: %+v", err)
		}
		done()
	}
	wg.Wait()
	amf.Config.Destroy()
	logger.InitLog.Infoln("AMF stopped")
}

// reload applies the configuration file and the settings read at run time.
func (amf *AMF) reload(ctx context.Context) {
	if err := amf.Reload(); err != nil {
		return
	}
	amf.logNgSetupView()
	amf.startStatistics(ctx)
}

// startStatistics starts the statistics timer, or restarts it when the
// configured period changed. A zero period disables it.
func (amf *AMF) startStatistics(ctx context.Context) {
	var period time.Duration
	amf.Config.View(func(v *amfContext.Values) {
		period = v.StatisticTimer
	})
	amf.statsMu.Lock()
	defer amf.statsMu.Unlock()
	if amf.stats != nil {
		if period == amf.statsPeriod {
			return
		}
		amf.stats.Stop()
	}
	amf.statsPeriod = period
	amf.stats = amfContext.NewPeriodicTimer(ctx, period, amf.logStatistics)
	logger.InitLog.Infof("statistics timer set to %s", period)
}

func (amf *AMF) stopStatistics() {
	amf.statsMu.Lock()
	defer amf.statsMu.Unlock()
	if amf.stats != nil {
		amf.stats.Stop()
		amf.stats = nil
	}
}

func (amf *AMF) logNgSetupView() {
	var view util.NgSetupView
	amf.Config.View(func(v *amfContext.Values) {
		view = util.BuildNgSetupView(v)
	})
	logger.NgapLog.Infof("NG setup: %d served GUAMIs, %d served TAIs, relative capacity %d",
		len(view.ServedGUAMIList.List), len(view.ServedTAIs), view.RelativeAMFCapacity.Value)
}

func (amf *AMF) logStatistics() {
	state := amf.Config.State()
	amf.Config.View(func(v *amfContext.Values) {
		logger.CtxLog.Infof("config state %s: max gNBs %d, max UEs %d, %d served TAIs (%s), %d APN corrections",
			state, v.MaxGnbs, v.MaxUes, len(v.ServedTai.Entries), v.ServedTai.ListType,
			v.NAS.ApnCorrectionMap.Count)
	})
}
