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

// Package report writes and reads XML classification reports: which file
// was recognized as which format, and how.
package report

import (
	"encoding/xml"
	"os"
	"runtime"
	"time"

	"github.com/ostafen/tagkit/pkg/sysinfo"
)

const SchemaVersion = "1.0"

// Header is the root element of a classification report.
type Header struct {
	XMLName       xml.Name `xml:"report"`
	SchemaVersion string   `xml:"version,attr,omitempty"`
	Creator       Creator  `xml:"creator"`
	Source        Source   `xml:"source"`
}

// Creator describes the software and environment that produced the report.
type Creator struct {
	Package              string  `xml:"package"`
	Version              string  `xml:"version"`
	ExecutionEnvironment ExecEnv `xml:"execution_environment"`
}

// ExecEnv records where the classification ran.
type ExecEnv struct {
	OS      string `xml:"os_sysname"`
	Release string `xml:"os_release"`
	Version string `xml:"os_version"`
	Host    string `xml:"host"`
	Arch    string `xml:"arch"`
	Start   string `xml:"start_time"`
}

// Source describes what was classified.
type Source struct {
	RootPath  string `xml:"root_path"`
	NumFiles  int    `xml:"num_files,omitempty"`
	TotalSize uint64 `xml:"total_size,omitempty"`
}

// Entry is one classified file.
type Entry struct {
	XMLName   xml.Name `xml:"file"`
	Path      string   `xml:"path"`
	Size      uint64   `xml:"size"`
	Format    string   `xml:"format"`
	ShortName string   `xml:"short_name,omitempty"`
	MimeType  string   `xml:"mime_type,omitempty"`
	MatchedBy string   `xml:"matched_by"`
}

// GetExecEnv probes the current execution environment.
func GetExecEnv() ExecEnv {
	si, err := sysinfo.Stat()
	if err != nil {
		si = &sysinfo.SysUnknown
	}

	host, _ := os.Hostname()

	return ExecEnv{
		OS:      si.Name,
		Release: si.Release,
		Version: si.Version,
		Host:    host,
		Arch:    runtime.GOARCH,
		Start:   time.Now().Format(time.RFC3339),
	}
}
