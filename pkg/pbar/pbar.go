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
package pbar

import (
	"fmt"
	"os"
	"strings"
	"time"

	fmtutil "github.com/ostafen/tagkit/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

// ProgressBar tracks and renders classification progress on stderr.
type ProgressBar struct {
	TotalBytes     int64
	ProcessedBytes int64
	Identified     int
	Unknown        int

	startTime      time.Time
	lastUpdateTime time.Time
}

// New initializes a progress bar over the given total byte count.
func New(totalBytes int64) *ProgressBar {
	return &ProgressBar{
		TotalBytes: totalBytes,
		startTime:  time.Now(),
	}
}

// Add records a processed file and its size.
func (pb *ProgressBar) Add(size int64, identified bool) {
	pb.ProcessedBytes += size
	if identified {
		pb.Identified++
	} else {
		pb.Unknown++
	}
}

// Render redraws the progress line. Unless forced, redraws are throttled to
// MinRefreshRate.
func (pb *ProgressBar) Render(force bool) {
	if !force && time.Since(pb.lastUpdateTime) < MinRefreshRate {
		return
	}
	pb.lastUpdateTime = time.Now()

	percentage := 100.0
	if pb.TotalBytes > 0 {
		percentage = float64(pb.ProcessedBytes) / float64(pb.TotalBytes) * 100
	}

	const barLength = 20
	filledLen := int(barLength * percentage / 100)
	if filledLen > barLength {
		filledLen = barLength
	}

	var bar string
	if filledLen == barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	elapsed := time.Since(pb.startTime).Seconds()
	var speed float64
	if elapsed > 0 {
		speed = float64(pb.ProcessedBytes) / elapsed
	}

	fmt.Fprintf(os.Stderr, "\r[%s] %3.0f%% %s/%s  %d identified, %d unknown (%s/s)",
		bar,
		percentage,
		fmtutil.FormatBytes(pb.ProcessedBytes),
		fmtutil.FormatBytes(pb.TotalBytes),
		pb.Identified,
		pb.Unknown,
		fmtutil.FormatBytes(int64(speed)),
	)
}

// Done forces a final render and terminates the progress line.
func (pb *ProgressBar) Done() {
	pb.Render(true)
	fmt.Fprintln(os.Stderr)
}
