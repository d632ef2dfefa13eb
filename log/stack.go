// log/stack.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"fmt"
	"runtime"
)

// StackFrame is one entry of a captured call stack.
type StackFrame struct {
	File     string
	Line     int
	Function string
}

func (f StackFrame) String() string {
	return fmt.Sprintf("%s:%d %s", f.File, f.Line, f.Function)
}

// StackFrames is a captured call stack, innermost frame first.
type StackFrames []StackFrame

// Strings renders each frame for inclusion in a structured log
// attribute.
func (s StackFrames) Strings() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.String()
	}
	return out
}

// Callstack captures the call stack above its caller, skipping the
// logging wrapper frames themselves. If frames is non-nil, the
// captured frames are appended to it instead of a fresh slice.
func Callstack(frames StackFrames) StackFrames {
	var pcs [32]uintptr
	// Skip runtime.Callers, Callstack, and the Logger method that
	// called it (Debug/Info/Warn/Error/...).
	n := runtime.Callers(3, pcs[:])
	iter := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := iter.Next()
		frames = append(frames, StackFrame{
			File:     frame.File,
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}
	return frames
}
