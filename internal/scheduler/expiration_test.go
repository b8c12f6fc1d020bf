package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/apnmt/payment/internal/config"
	"github.com/apnmt/payment/internal/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingSweep struct {
	calls atomic.Int64
}

func (c *countingSweep) CheckExpirationOfSubscriptions(context.Context) error {
	c.calls.Add(1)
	return nil
}

func TestExpirationScheduler_RunsSweepPeriodically(t *testing.T) {
	zapLogger, _ := zap.NewDevelopment()
	log := &logger.Logger{SugaredLogger: zapLogger.Sugar()}

	cfg := config.GetDefaultConfig()
	cfg.Expiration.Interval = 10 * time.Millisecond

	sweep := &countingSweep{}
	s := NewExpirationScheduler(cfg, sweep, log)
	s.Start()

	assert.Eventually(t, func() bool {
		return sweep.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	after := sweep.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, sweep.calls.Load())
}
