// Package clock abstrae la hora actual para poder fijarla en tests.
package clock

import "time"

// Clock fuente de tiempo.
type Clock interface {
	Now() time.Time
}

type system struct{}

func (system) Now() time.Time { return time.Now() }

// NewSystem devuelve el reloj del sistema.
func NewSystem() Clock { return system{} }

// Fixed reloj detenido en un instante; Advance lo mueve.
type Fixed struct {
	t time.Time
}

// NewFixed crea un reloj fijo en t.
func NewFixed(t time.Time) *Fixed { return &Fixed{t: t} }

func (f *Fixed) Now() time.Time { return f.t }

// Advance adelanta el reloj d.
func (f *Fixed) Advance(d time.Duration) { f.t = f.t.Add(d) }
