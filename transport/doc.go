// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package transport owns the listening endpoint and the raw descriptor
// I/O used by the event loop: socket creation, bind/listen, accept,
// non-blocking read/write and bidirectional shutdown.
package transport
