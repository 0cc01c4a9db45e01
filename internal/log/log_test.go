// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := &log.Logger{Handler: NewCustomHandler(&buf), Level: log.DebugLevel}

	logger.WithField("b", 2).WithField("a", 1).Info("hello")
	logger.WithError(errors.New("boom")).Error("failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " I hello a=1 b=2"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], " E failed error=boom"), lines[1])
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{"", log.ErrorLevel},
		{"debug", log.DebugLevel},
		{"WARN", log.WarnLevel},
		{"nonsense", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("ACLCTL_LOG", tt.env)
			InitLogger()
			logger, ok := log.Log.(*log.Logger)
			assert.True(t, ok)
			assert.Equal(t, tt.want, logger.Level)
		})
	}
}
