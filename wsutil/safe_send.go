package wsutil

import "log/slog"

// SafeSend delivers data to a client send channel without blocking and
// without panicking if the channel was already closed by the hub. A
// full or closed channel drops the message; a recovered panic is logged
// for debugging.
func SafeSend(ch chan []byte, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("SafeSend recovered panic", "tag", "wsutil", "panic", r)
		}
	}()
	select {
	case ch <- data:
	default:
	}
}
