// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package api defines the public contracts of the hioload-async runtime:
// the poll-based Task abstraction, its tagged Poll outcome, work items for
// worker-pool offload, descriptor watching, and completion signals.
// Implementations live in the pool, reactor and runtime packages.
package api
