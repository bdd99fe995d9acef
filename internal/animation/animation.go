// Package animation configures the scroll-reveal library loaded by the page.
package animation

import (
	"encoding/json"
	"reflect"
	"time"
)

// Config is handed to the library's init entry point.
type Config struct {
	Duration time.Duration
	Once     bool
	Easing   string
}

// DefaultConfig reveals each element once over 800ms with an ease-in-out curve.
func DefaultConfig() Config {
	return Config{
		Duration: 800 * time.Millisecond,
		Once:     true,
		Easing:   "ease-in-out",
	}
}

// MarshalJSON emits the library's option names, with the duration in milliseconds.
func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Duration int64  `json:"duration"`
		Once     bool   `json:"once"`
		Easing   string `json:"easing"`
	}{
		Duration: c.Duration.Milliseconds(),
		Once:     c.Once,
		Easing:   c.Easing,
	})
}

// Initializer is anything exposing the library's init entry point.
type Initializer interface {
	Init(cfg Config)
}

// Bootstrap calls Init once with the default config when handle can be
// initialized, and does nothing otherwise. It reports whether Init ran.
func Bootstrap(handle any) bool {
	lib, ok := handle.(Initializer)
	if !ok || isNilPointer(lib) {
		return false
	}
	lib.Init(DefaultConfig())
	return true
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// ScriptHandle captures the config the page passes to the library in the browser.
type ScriptHandle struct {
	cfg   Config
	ready bool
}

func (h *ScriptHandle) Init(cfg Config) {
	h.cfg = cfg
	h.ready = true
}

// Options returns the captured config and whether Init was called.
func (h *ScriptHandle) Options() (Config, bool) {
	return h.cfg, h.ready
}
