// SPDX-FileCopyrightText: 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"runtime/debug"

	"go.uber.org/zap"
)

// RecoverWithLog is deferred at the top of long running goroutines. A panic
// in task is logged with its stack and the goroutine returns.
func RecoverWithLog(log *zap.SugaredLogger, task string) {
	if p := recover(); p != nil {
		log.Errorw("panic recovered", "task", task, "error", p, "stack", string(debug.Stack()))
	}
}
