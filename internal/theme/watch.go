package theme

import (
	"context"
	"time"
)

// Watch polls detect every interval and sends the new value whenever the
// system preference changes. The channel is closed when ctx ends. A
// non-positive interval returns a channel that only closes.
func Watch(ctx context.Context, interval time.Duration, detect Detector) <-chan bool {
	out := make(chan bool)
	if interval <= 0 || detect == nil {
		go func() {
			<-ctx.Done()
			close(out)
		}()
		return out
	}
	last := detect()
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := detect()
				if now == last {
					continue
				}
				last = now
				select {
				case out <- now:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
