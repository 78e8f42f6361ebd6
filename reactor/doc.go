// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the blocking readiness-poll primitive behind
// api.Poller. The Unix implementation is a classic select(2) reactor:
// the interest set is rebuilt into an fd_set on every wait, bounded by
// the numeric maximum of the registered descriptors.
package reactor
