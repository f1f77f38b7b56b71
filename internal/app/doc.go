// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the execution lifecycle (load puzzles,
// count them, print totals, publish a report), decoupled from any specific
// entrypoint like a CLI.
package app
