package helpers

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

func TestAttempts(t *testing.T) {
	assert.Equal(t, 0, Attempts(nil))
	assert.Equal(t, 0, Attempts(amqp.Table{}))
	assert.Equal(t, 3, Attempts(amqp.Table{AttemptsHeader: int32(3)}))
	assert.Equal(t, 4, Attempts(amqp.Table{AttemptsHeader: int64(4)}))
	assert.Equal(t, 0, Attempts(amqp.Table{AttemptsHeader: "4"}))
}
