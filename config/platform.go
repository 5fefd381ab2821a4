// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is an operating system and architecture pair.
type Platform struct {
	OS   string
	Arch string
}

// CurrentPlatform returns the platform the program was built for.
func CurrentPlatform() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// String returns the platform in the form "os/arch".
func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// SetString sets the platform from a string of the form os[/arch].
// A missing arch is recorded as "*".
func (p *Platform) SetString(s string) error {
	os, arch, found := strings.Cut(s, "/")
	if os == "" {
		return fmt.Errorf("config: empty platform %q", s)
	}
	if !found || arch == "" {
		arch = "*"
	}
	*p = Platform{OS: os, Arch: arch}
	return nil
}

// DesktopOS lists the operating systems with a windowing driver.
// A false entry is a known operating system without one.
var DesktopOS = map[string]bool{
	"darwin":    true,
	"dragonfly": true,
	"freebsd":   false,
	"linux":     true,
	"netbsd":    false,
	"openbsd":   true,
	"windows":   true,
	"android":   false,
	"ios":       false,
	"js":        false,
	"wasip1":    false,
	"plan9":     false,
}

// Supported returns nil if a window can be opened on the platform.
func (p Platform) Supported() error {
	ok, known := DesktopOS[p.OS]
	if !known {
		return fmt.Errorf("config: unknown operating system %q", p.OS)
	}
	if !ok {
		return fmt.Errorf("config: operating system %q has no desktop window support", p.OS)
	}
	return nil
}
