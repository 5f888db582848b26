package main

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogfront/internal/config"
	"blogfront/internal/query"
)

func TestNewLogger(t *testing.T) {
	cfg = config.Config{Log: config.LogConfig{Level: "debug"}}

	var buf bytes.Buffer
	log, err := newLogger(&buf, &logrus.JSONFormatter{})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("component", "test").Debug("hello")
	assert.Contains(t, buf.String(), `"component":"test"`)

	cfg.Log.Level = "loud"
	_, err = newLogger(&buf, &logrus.TextFormatter{})
	assert.Error(t, err)
}

func TestBrowseLogOutput(t *testing.T) {
	cfg = config.Config{}
	out, closeOut, err := browseLogOutput()
	require.NoError(t, err)
	closeOut()
	assert.Equal(t, io.Discard, out)

	cfg.Log.File = filepath.Join(t.TempDir(), "browse.log")
	out, closeOut, err = browseLogOutput()
	require.NoError(t, err)
	defer closeOut()
	assert.NotEqual(t, io.Discard, out)
}

func TestInitialQuery(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want query.Query
	}{
		{name: "no argument", args: nil, want: query.Query{Page: 1, Limit: 5}},
		{name: "filters keep page size", args: []string{"search=react&year=2024"}, want: query.Query{Page: 1, Limit: 5, Search: "react", Year: 2024}},
		{name: "explicit limit wins", args: []string{"?page=2&limit=10"}, want: query.Query{Page: 2, Limit: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, initialQuery(tt.args, 5))
		})
	}
}
