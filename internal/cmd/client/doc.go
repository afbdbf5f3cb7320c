// Package client provides the `ktrace` command-line client.
//
// The CLI talks to the ktrace HTTP endpoints to drive a trace session
// and read out the buffer from a terminal. It is primarily intended
// for developers and operators.
//
// # Address configuration
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. When using the standalone binary, it is
// read from the KTRACE_HTTP environment variable and defaults to
// http://127.0.0.1:8080.
//
// Usage
//
//	ktrace trace start
//	ktrace trace start --group sched --group irq
//
//	ktrace trace status
//
//	ktrace trace stop
//
//	# Decode records as JSON lines, or colorized text with --pretty
//	ktrace trace dump
//	ktrace trace dump --pretty
//
//	# Save the raw buffer for offline decoding
//	ktrace trace dump --out trace.bin
//
//	# Discard everything and start over
//	ktrace trace rewind
//
// Notes
//
//   - dump reads the clipped valid range: everything up to the stop
//     marker when the session is stopped, or up to the write cursor
//     while it is live.
//   - start with no --group enables every group.
package client
