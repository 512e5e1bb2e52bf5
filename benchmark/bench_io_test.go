package benchmark

import (
	"bytes"
	"testing"

	"github.com/fatih/color"

	snapio "github.com/dzonerzy/go-snapopt/io"
)

// Category: io

func BenchmarkIO_Style(b *testing.B) {
	m := snapio.New().WithOut(&bytes.Buffer{}).ForceColor()
	style := snapio.NewStyle(color.FgHiRed, color.Bold)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = style.Sprint(m, "unknown_option")
	}
}

func BenchmarkIO_Logger(b *testing.B) {
	var out bytes.Buffer
	l := snapio.NewLogger(snapio.New().WithOut(&out).WithErr(&out).NoColor())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Error("unknown option: --%s", "verbsoe")
		out.Reset()
	}
}
