package model

import (
	"context"
	"sync"
)

// Handle loads an artifact the first time it is asked for and hands out the
// same result for the rest of the process. A failed load is not retried.
type Handle struct {
	src  Source
	once sync.Once
	art  *Artifact
	err  error
}

func NewHandle(src Source) *Handle {
	return &Handle{src: src}
}

// Get returns the loaded artifact, loading it on first use. The load ignores
// cancellation of ctx so one caller giving up does not fail every later one.
func (h *Handle) Get(ctx context.Context) (*Artifact, error) {
	h.once.Do(func() {
		h.art, h.err = Load(context.WithoutCancel(ctx), h.src)
	})
	return h.art, h.err
}
