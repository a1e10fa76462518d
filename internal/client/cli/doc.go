// Package cli provides the interactive ReportDrop command-line client.
//
// It wires configuration, the local database, the session, the storage
// transport and the upload orchestrator behind a small REPL. Typical flow:
// log in (or register), select one or more .pbit files, upload them and
// watch per-file progress.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
