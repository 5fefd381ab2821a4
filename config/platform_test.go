// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformSetString(t *testing.T) {
	var p Platform
	assert.NoError(t, p.SetString("linux/amd64"))
	assert.Equal(t, Platform{OS: "linux", Arch: "amd64"}, p)
	assert.Equal(t, "linux/amd64", p.String())

	assert.NoError(t, p.SetString("windows"))
	assert.Equal(t, Platform{OS: "windows", Arch: "*"}, p)

	assert.Error(t, p.SetString("/arm64"))
}

func TestPlatformSupported(t *testing.T) {
	assert.NoError(t, Platform{OS: "linux", Arch: "amd64"}.Supported())
	assert.NoError(t, Platform{OS: "darwin", Arch: "arm64"}.Supported())
	assert.ErrorContains(t, Platform{OS: "ios", Arch: "arm64"}.Supported(), "no desktop window support")
	assert.ErrorContains(t, Platform{OS: "beos", Arch: "386"}.Supported(), "unknown operating system")
}

func TestCurrentPlatform(t *testing.T) {
	p := CurrentPlatform()
	assert.Equal(t, runtime.GOOS, p.OS)
	assert.Equal(t, runtime.GOARCH, p.Arch)
}
