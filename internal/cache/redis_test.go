package cache

import (
	"testing"
	"time"

	"github.com/Domenick1991/airservice/config"
	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "cache:list:countries", listKey("countries"))
	assert.Equal(t, "lock:ticket-reminders", lockKey("ticket-reminders"))
}

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, time.Minute)
	assert.NotNil(t, c)
	assert.Equal(t, time.Minute, c.referenceTTL)
	assert.NoError(t, c.Close())
}
