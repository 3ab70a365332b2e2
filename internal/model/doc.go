package model

// Package model defines domain data structures used across the app: the
// download request with its quality choices, the in-memory download task,
// and status enums. Structures are plain values so the UI and CLI can copy
// snapshots freely.
