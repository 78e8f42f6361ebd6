// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package api holds the pure interfaces and error taxonomy of hioload-echo.
// It has no dependencies on concrete implementations so that transports,
// reactors and control planes can be swapped independently.
package api
