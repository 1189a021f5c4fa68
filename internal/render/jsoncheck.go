// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// JSONError describes a JSON syntax failure with its position in the input.
type JSONError struct {
	Line    int
	Column  int
	Msg     string
	Context string // the offending line of input
}

// Error renders the failure with the offending line and a caret marker,
// mirroring what a user needs to fix a broken rendered inputs file.
func (e *JSONError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid JSON at line %d, column %d: %s", e.Line, e.Column, e.Msg)
	if e.Context != "" {
		fmt.Fprintf(&b, "\n  %s\n  %s^", e.Context, strings.Repeat(" ", e.Column-1))
	}
	return b.String()
}

// CheckJSON validates that data is syntactically valid JSON. On failure it
// returns a *JSONError carrying line, column and line context.
func CheckJSON(data []byte) error {
	var v any
	err := json.Unmarshal(data, &v)
	if err == nil {
		return nil
	}

	var offset int64 = -1
	var msg string

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
		msg = syntaxErr.Error()
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
		msg = typeErr.Error()
	default:
		return fmt.Errorf("invalid JSON: %w", err)
	}

	line, col, context := locateOffset(data, offset)
	return &JSONError{Line: line, Column: col, Msg: msg, Context: context}
}

// locateOffset converts a byte offset into a 1-based line/column pair and
// returns the text of that line.
func locateOffset(data []byte, offset int64) (line, col int, context string) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}

	line = 1
	lineStart := 0
	for i := 0; i < int(offset); i++ {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = int(offset) - lineStart
	if col < 1 {
		col = 1
	}

	lineEnd := lineStart
	for lineEnd < len(data) && data[lineEnd] != '\n' {
		lineEnd++
	}
	context = strings.TrimRight(string(data[lineStart:lineEnd]), "\r")
	return line, col, context
}
