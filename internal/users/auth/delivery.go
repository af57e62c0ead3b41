// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
)

// DeliveryChannel sends a one-time password to an employee out of band.
//
// Implementations must treat the code as a secret: it may be sent to the
// target but never persisted or exposed through the API.
type DeliveryChannel interface {
	Send(ctx context.Context, target, code string) error
}

// LogDelivery writes codes to the structured log instead of an external
// gateway. It is the default channel in development and test environments.
//
// TODO: add a Twilio-backed SMS channel once the gateway account is
// provisioned; the interface is already shaped for it.
type LogDelivery struct {
	logger *slog.Logger
}

// NewLogDelivery creates a log-backed delivery channel.
func NewLogDelivery(logger *slog.Logger) *LogDelivery {
	return &LogDelivery{logger: logger}
}

// Send logs the code at INFO level. It never fails.
func (d *LogDelivery) Send(_ context.Context, target, code string) error {
	d.logger.Info("otp_issued", "target", maskTarget(target), "code", code)
	return nil
}

// maskTarget hides all but the trailing digits of a delivery target.
func maskTarget(target string) string {
	if len(target) <= maskVisibleDigits {
		return target
	}
	masked := make([]byte, len(target)-maskVisibleDigits)
	for i := range masked {
		masked[i] = '*'
	}
	return string(masked) + target[len(target)-maskVisibleDigits:]
}
