package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "zero", bytes: 0, want: "0 Bytes"},
		{name: "negative", bytes: -5, want: "0 Bytes"},
		{name: "bytes", bytes: 512, want: "512.00 Bytes"},
		{name: "kilobytes", bytes: 1536, want: "1.50 KB"},
		{name: "exact megabyte", bytes: 1 << 20, want: "1.00 MB"},
		{name: "gigabytes", bytes: 5 * (1 << 30), want: "5.00 GB"},
		{name: "terabytes cap", bytes: 2048 * (1 << 40), want: "2048.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSize(tt.bytes))
		})
	}
}

func TestFormatSizeUnitStepsEveryFactorOf1024(t *testing.T) {
	var b int64 = 1
	for i, unit := range sizeUnits {
		got := FormatSize(b)
		assert.Equal(t, "1.00 "+unit, got, "step %d", i)
		assert.Contains(t, FormatSize(b*1024-1), " "+unit, "just under step %d", i+1)
		b *= 1024
	}
}
