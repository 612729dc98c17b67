package pipeline

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/minio/crc64nvme"
	"github.com/wolfeidau/glslt/internal/transpiler"
)

const compressedSuffix = ".zst"

// write stores data at path unless the last write to path had the same
// digest and the file is still there. It reports whether a write happened.
func (p *Pipeline) write(path string, data []byte) (bool, error) {
	sum := digest(data)
	if prev, ok := p.digests.Get(path); ok && prev == sum && fileExists(path) {
		return false, nil
	}

	if err := transpiler.WriteOutput(path, data); err != nil {
		return false, err
	}

	if p.config.Compress {
		if err := writeCompressed(path+compressedSuffix, data); err != nil {
			return true, err
		}
	}

	p.digests.Add(path, sum)
	return true, nil
}

func digest(data []byte) uint64 {
	h := crc64nvme.New()
	_, _ = h.Write(data)
	return h.Sum64()
}

// writeCompressed writes a zstd compressed copy of data to path
func writeCompressed(path string, data []byte) error {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}
	defer enc.Close()

	if err := os.WriteFile(path, enc.EncodeAll(data, nil), 0644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write compressed output: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
