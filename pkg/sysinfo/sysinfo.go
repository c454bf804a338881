// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package sysinfo

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// SysUnknown is returned when platform details cannot be gathered.
var SysUnknown = SysInfo{
	Name:    runtime.GOOS,
	Release: "unknown",
	Version: "unknown",
}

// SysInfo holds the basic operating system details embedded in
// classification reports.
type SysInfo struct {
	Name    string // OS name (e.g., "linux", "darwin", "windows").
	Release string // Release or distribution name.
	Version string // Build or kernel version.
}

// Stat gathers operating system information for the current platform.
func Stat() (*SysInfo, error) {
	name := runtime.GOOS

	var release, version string
	switch name {
	case "linux":
		release, version = linuxInfo()
	case "darwin":
		release, version = darwinInfo()
	case "windows":
		release, version = windowsInfo()
	default:
		return &SysUnknown, nil
	}

	if release == "" {
		release = SysUnknown.Release
	}
	if version == "" {
		version = SysUnknown.Version
	}

	return &SysInfo{
		Name:    name,
		Release: release,
		Version: version,
	}, nil
}

// linuxInfo reads /etc/os-release, the systemd-standard place for
// distribution identity.
func linuxInfo() (release, version string) {
	f, err := os.Open("/etc/os-release")
	if err != nil {
		return "", ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)

		switch key {
		case "NAME":
			release = value
		case "VERSION_ID":
			version = value
		}
	}
	return release, version
}

func darwinInfo() (release, version string) {
	return "macOS", commandOutput("sw_vers", "-productVersion")
}

func windowsInfo() (release, version string) {
	return "Windows", commandOutput("cmd", "/c", "ver")
}

func commandOutput(name string, args ...string) string {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return ""
	}
	return string(bytes.TrimSpace(out))
}
