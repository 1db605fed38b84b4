package telemetry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/USC-NSL-DDB/ddbstat/internal/domain"
)

// Scanner buffer sizing for JSONL exports: bodies can embed multi-kilobyte
// payloads, so allow lines up to 10MB.
const (
	initialBuffer = 1024 * 1024
	maxLineSize   = 10 * 1024 * 1024
)

// Batch is a fully materialized telemetry export.
type Batch struct {
	Events  []domain.Event
	Lines   int // non-blank lines seen
	Skipped int // lines that failed to parse as JSON
}

// ParseFile reads a JSONL telemetry export. Files ending in .gz, .zst or
// .zstd are decompressed transparently; exports are routinely shipped
// compressed.
func ParseFile(path string) (*Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open telemetry export: %w", err)
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(path, ".zst"), strings.HasSuffix(path, ".zstd"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		defer zr.Close()
		return Parse(zr)
	case strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		defer gr.Close()
		return Parse(gr)
	}
	return Parse(f)
}

// Parse reads one JSON event record per line. Blank lines are ignored;
// unparseable lines are skipped and counted rather than failing the batch,
// since a single corrupt record should not discard an export.
func Parse(r io.Reader) (*Batch, error) {
	b := &Batch{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialBuffer), maxLineSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		b.Lines++

		var ev domain.Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			b.Skipped++
			continue
		}
		b.Events = append(b.Events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan telemetry export: %w", err)
	}
	return b, nil
}
