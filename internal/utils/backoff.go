package utils

import (
	"math/rand"
	"time"
)

// Backoff reintenta con espera exponencial más jitter para no sincronizar
// reintentos contra la misma fuente.
type Backoff struct {
	base       time.Duration
	jitter     time.Duration
	maxRetries int
}

func NewBackoff(base, jitter time.Duration, maxRetries int) Backoff {
	return Backoff{base: base, jitter: jitter, maxRetries: maxRetries}
}

func (b Backoff) Do(fn func(i int) error) error {
	var err error
	for i := 0; ; i++ {
		err = fn(i)
		if err == nil || i >= b.maxRetries {
			return err
		}
		sleep := time.Duration(1<<i) * b.base
		if b.jitter > 0 {
			sleep += time.Duration(rand.Int63n(int64(b.jitter)))
		}
		time.Sleep(sleep)
	}
}
