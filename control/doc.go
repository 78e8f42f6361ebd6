// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package control implements the runtime control plane: a dynamic
// configuration store with reload hooks, a metrics registry and debug
// probes. The server surfaces all three through api.Control.
package control
