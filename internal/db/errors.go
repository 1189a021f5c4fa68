// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "errors"

// ErrDuplicate reports an insert that conflicts with an existing row.
var ErrDuplicate = errors.New("duplicate entry")

// ErrNotFound reports a lookup that matched no row.
var ErrNotFound = errors.New("not found")
