package logger

import "sync"

// components holds loggers registered by name. Unregistered names resolve to
// the global logger tagged with the component.
var components sync.Map

// Register makes l the logger returned by Get(name).
func Register(name string, l *Logger) {
	components.Store(name, l)
}

// Get returns the logger registered under name, or the global logger tagged
// with component=name.
func Get(name string) *Logger {
	if l, ok := components.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}
