// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "github.com/yjcyxky/biominer-app-util/internal/logging"

// debug toggles verbose database logging.
var debug bool

// SetDebug enables or disables db-level debug logging.
func SetDebug(on bool) {
	debug = on
}

// dbLogf logs a db diagnostic when debug logging is enabled.
func dbLogf(format string, v ...interface{}) {
	if debug {
		logging.Debugf(format, v...)
	}
}
