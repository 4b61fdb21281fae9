package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	casos := map[string]zerolog.Level{
		"trace": zerolog.TraceLevel,
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, parseLevel(entrada))
	}

	// Valores desconocidos o vacíos caen a info.
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

func TestNew_RespetaElNivelConfigurado(t *testing.T) {
	l := New(Config{Env: "production", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, l.zl.GetLevel())

	l = New(Config{Env: "development", Level: "debug"})
	assert.Equal(t, zerolog.DebugLevel, l.zl.GetLevel())
}
