// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package control carries the runtime's operational concerns: structured
// logging and metrics collection. Both are narrow interfaces with in-process
// defaults so the runtime has no hard dependency on any telemetry stack.
package control
