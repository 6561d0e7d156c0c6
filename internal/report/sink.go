package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedSuffix marks an output path that is written zstd-compressed.
const CompressedSuffix = ".zst"

// sink is a file sink, optionally compressed.
type sink struct {
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// OpenSink creates (or truncates) the file at path for writing a report.
// Paths ending in ".zst" are zstd-compressed. The caller must Close the sink
// to flush it.
func OpenSink(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}

	s := &sink{f: f}
	if strings.HasSuffix(path, CompressedSuffix) {
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		s.enc = enc
		s.w = bufio.NewWriter(enc)
	} else {
		s.w = bufio.NewWriter(f)
	}
	return s, nil
}

func (s *sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Close flushes buffered output, finishes the zstd frame and closes the file.
// The first error wins.
func (s *sink) Close() error {
	err := s.w.Flush()
	if s.enc != nil {
		if cerr := s.enc.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}
