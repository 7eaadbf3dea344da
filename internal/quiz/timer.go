package quiz

import (
	"context"
	"time"
)

// RunTimer 按 interval 驱动 Tick，直到测验结束、重考或 ctx 取消。
// 调用方负责 go RunTimer(...)
func RunTimer(ctx context.Context, s *Session, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	attempt := s.Attempt()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			completed, active := s.tickFor(attempt)
			if completed || !active {
				return
			}
		}
	}
}
