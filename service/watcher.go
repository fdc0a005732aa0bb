// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/omec-project/amfcfg/logger"
	"github.com/omec-project/amfcfg/util"
	"github.com/pkg/errors"
)

const DefaultWatchDebounce = 500 * time.Millisecond

// ConfigWatcher reports changes of the configuration file. The parent
// directory is watched so that editors replacing the file are noticed too.
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

func NewConfigWatcher(path string, debounce time.Duration) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(path))
	}
	return &ConfigWatcher{path: path, debounce: debounce, watcher: watcher}, nil
}

// Run calls changed once per burst of writes to the file, until ctx is done
// or the watcher is closed.
func (w *ConfigWatcher) Run(ctx context.Context, changed func()) {
	logger.InitLog.Infof("watching %s for changes", w.path)
	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.InitLog.Debugf("configuration file event %s", event.Op)
			w.trigger(changed)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.InitLog.Warnf("configuration watcher error: %+v", err)
		}
	}
}

func (w *ConfigWatcher) trigger(changed func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		defer util.RecoverWithLog(logger.InitLog, "configuration reload")
		changed()
	})
}

func (w *ConfigWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *ConfigWatcher) Close() error {
	return w.watcher.Close()
}
