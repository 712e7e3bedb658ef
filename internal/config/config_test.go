package config

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := NewAppConfig()

	require.Equal(t, ":8080", c.ApiAddr())
	require.Equal(t, "govtt.sqlite", c.DB())
	require.Equal(t, time.Hour*24, c.TokenTTL())
	require.Equal(t, 500, c.ChatHistoryLimit())
}

func TestLoadFile(t *testing.T) {
	f, err := os.CreateTemp("", "govtt_test")
	require.NoError(t, err)

	fmt.Fprint(f, "---\napi_addr: \":9000\"\ntoken:\n    ttl: 1h\n    secret: abc\n")
	f.Close()

	c := NewAppConfig()
	require.True(t, c.Load(f.Name()))

	require.Equal(t, ":9000", c.ApiAddr())
	require.Equal(t, time.Hour, c.TokenTTL())
	require.Equal(t, "abc", c.TokenSecret())
}

func TestLoadMissingFile(t *testing.T) {
	c := NewAppConfig()
	require.False(t, c.Load("no_such_file.yml"))
	require.Equal(t, ":8080", c.ApiAddr())
}
