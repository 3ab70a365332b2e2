package logging

// Package logging wires the process-wide zerolog logger: console output on
// stderr, a debug switch, and per-component sub-loggers.
