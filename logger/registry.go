package logger

import "sync"

var (
	regMu sync.RWMutex
	named = make(map[string]*Logger)
)

// Register stores a logger under a component name, replacing any previous
// registration. Components that want a specially configured logger (say, a
// different level for the runner) register it here once at startup.
func Register(name string, l *Logger) {
	regMu.Lock()
	named[name] = l
	regMu.Unlock()
}

// Get returns the logger registered under name, or the global logger
// tagged with that component name when nothing is registered.
func Get(name string) *Logger {
	regMu.RLock()
	l, ok := named[name]
	regMu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults seeds the registry with component-tagged children of
// the global logger. Call after Init.
func RegisterDefaults(names ...string) {
	for _, name := range names {
		Register(name, GetGlobalLogger().WithComponent(name))
	}
}
