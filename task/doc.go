// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package task provides the built-in Task implementations: immediate
// values, worker-pool-backed blocking offload, reactor-backed stream reads,
// regular-file offload and the join combinator.
package task
