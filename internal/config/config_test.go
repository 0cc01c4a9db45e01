// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig sets ACLCTL_CFG to point to a test config file and resets
// the global Config so the next access reloads it.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("ACLCTL_CFG", absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "http://localhost:8080/app", cfg.Data["host"])
				assert.Equal(t, "text", cfg.Data["output"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				list, ok := cfg.Data["list"].(map[string]interface{})
				assert.True(t, ok, "list should be a map")
				assert.Equal(t, "json", list["output"])
				assert.Equal(t, "-size", list["sort"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "console", cfg.Data["name"])
				assert.Equal(t, 3, cfg.Data["retries"])
				assert.Equal(t, true, cfg.Data["titles"])
				assert.Equal(t, 30.5, cfg.Data["timeout"])
				routes, ok := cfg.Data["routes"].([]interface{})
				assert.True(t, ok)
				assert.Len(t, routes, 2)
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source, "should have a source path")
			},
		},
		{
			name:     "invalid yaml",
			testFile: "invalid.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("ACLCTL_CFG", "/nonexistent/path/aclctl.yaml")
	Config = Type{}

	_, err := Load()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_IsDirectory(t *testing.T) {
	t.Setenv("ACLCTL_CFG", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestLoad_SetsNamespace(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	cfg, err := Load("list")
	require.NoError(t, err)
	assert.Equal(t, "list", cfg.Namespace)
	assert.Equal(t, "list", Config.Namespace)
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{
			name:     "simple string value",
			testFile: "simple.yaml",
			key:      "host",
			want:     "http://localhost:8080/app",
		},
		{
			name:     "nested string value",
			testFile: "nested.yaml",
			key:      "colors.title",
			want:     "#f6be00",
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []string{"default-value"},
			want:         "default-value",
		},
		{
			name:     "missing key without default",
			testFile: "simple.yaml",
			key:      "missing",
			wantErr:  true,
		},
		{
			name:     "non-string value",
			testFile: "mixed-types.yaml",
			key:      "retries",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			_, _ = Load()

			got, err := GetString(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{
			name:     "int value",
			testFile: "mixed-types.yaml",
			key:      "retries",
			want:     3,
		},
		{
			name:     "float value converted to int",
			testFile: "mixed-types.yaml",
			key:      "timeout",
			want:     30,
		},
		{
			name:     "nested int value",
			testFile: "nested.yaml",
			key:      "list.padding",
			want:     2,
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []int{60},
			want:         60,
		},
		{
			name:     "missing key without default",
			testFile: "simple.yaml",
			key:      "missing",
			wantErr:  true,
		},
		{
			name:     "non-int value",
			testFile: "simple.yaml",
			key:      "host",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			_, _ = Load()

			got, err := GetInt(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_GetWithNamespace(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	_, err := Load()
	require.NoError(t, err)

	Config.Namespace = "list"
	val, err := Config.get("output")
	assert.NoError(t, err)
	assert.Equal(t, "json", val)

	// Falls back to the top level when the namespace lacks the key.
	val, err = Config.get("host")
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/app", val)

	Config.Namespace = "get"
	val, err = Config.get("output")
	assert.NoError(t, err)
	assert.Equal(t, "yaml", val)
}

func TestConfig_GetNestedPath(t *testing.T) {
	setupTestConfig(t, "deep-nested.yaml")

	_, err := Load()
	require.NoError(t, err)

	val, err := Config.get("level1.level2.level3.value")
	assert.NoError(t, err)
	assert.Equal(t, "deep-value", val)
}

func TestConfig_LazyLoad(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	val, err := GetString("output")
	assert.NoError(t, err)
	assert.Equal(t, "text", val)
	assert.NotEmpty(t, Config.Source, "Config should be loaded")
}

func TestGetStringSlice(t *testing.T) {
	setupTestConfig(t, "mixed-types.yaml")

	got, err := GetStringSlice("routes")
	require.NoError(t, err)
	assert.Equal(t, []string{"/dashboard", "/cache/home"}, got)

	got, err = GetStringSlice("name")
	require.NoError(t, err)
	assert.Equal(t, []string{"console"}, got)

	_, err = GetStringSlice("retries")
	assert.Error(t, err)

	_, err = GetStringSlice("missing")
	assert.Error(t, err)
}
