package cmd

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// StartWatchdog terminates the process through exit(1) when ctx is done and
// the run has not stopped within grace. The returned func disarms it.
func StartWatchdog(ctx context.Context, grace time.Duration, exit func(int)) func() {
	done := make(chan struct{})
	var once sync.Once

	go func() {
		select {
		case <-done:
			return
		case <-ctx.Done():
		}
		if stopped(done) {
			return
		}

		log.WithFields(log.Fields{
			"reason": ctx.Err(),
			"grace":  grace.String(),
		}).Warn("Interest run interrupted, waiting for in-flight work")

		timer := time.NewTimer(grace)
		defer timer.Stop()

		select {
		case <-done:
		case <-timer.C:
			if stopped(done) {
				return
			}
			log.Error("Interest run did not stop within grace period, exiting")
			exit(1)
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}

func stopped(done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	default:
		return false
	}
}
