package config

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// ConnectNATS dials the event bus when NATS_URL is set. A nil connection with
// a nil error means events are disabled.
func ConnectNATS() (*nats.Conn, error) {
	if Cfg.NATSURL == "" {
		return nil, nil
	}

	nc, err := nats.Connect(Cfg.NATSURL,
		nats.Name("whitepaper-portal-api"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				Logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}
