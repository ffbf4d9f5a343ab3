// Package store holds the client-side state containers for the expense
// portal: the expense collection with its pagination and form draft, and
// the approval queue with its reject flow. Stores are explicit, injectable
// containers; all mutation goes through their operations and every network
// failure is converted into a stored error plus a one-shot notice instead
// of propagating.
package store

import "go.uber.org/zap"

// Notifier receives one-shot user-facing notices: the success and failure
// toasts of mutating operations and the failure toasts of fetches.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards all notices
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// LogNotifier writes notices to a zap logger, for headless use
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Success(msg string) { n.Logger.Info(msg) }
func (n LogNotifier) Error(msg string)   { n.Logger.Warn(msg) }
