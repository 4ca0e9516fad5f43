package symmetric

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const DefaultChunkSize = 16 * 1024

// Streamer is the part of a cipher context that ProcessStream drives.
type Streamer interface {
	Update(dst, src []byte) (int, error)
	Final(dst []byte) (int, error)
}

// ProcessStream feeds r through an initialised context in chunks, writes
// every produced byte to w and finishes with Final. It returns the number of
// bytes written.
func ProcessStream(c Streamer, r io.Reader, w io.Writer, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	in := make([]byte, chunkSize)
	out := make([]byte, chunkSize+64)
	defer clear(out)

	var written int64
	for {
		n, err := r.Read(in)
		if n > 0 {
			m, uerr := c.Update(out, in[:n])
			if uerr != nil {
				return written, fmt.Errorf("failed to update cipher: %w", uerr)
			}
			if _, werr := w.Write(out[:m]); werr != nil {
				return written, werr
			}
			written += int64(m)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return written, err
		}
	}

	m, err := c.Final(out)
	if err != nil {
		return written, fmt.Errorf("failed to finalize cipher: %w", err)
	}
	if _, err := w.Write(out[:m]); err != nil {
		return written, err
	}
	return written + int64(m), nil
}

// ProcessFile streams inputPath through c into outputPath, creating the
// output directory if needed.
func ProcessFile(c Streamer, inputPath, outputPath string, chunkSize int) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("inputPath %s does not exist", inputPath)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("cannot open input file: %w", err)
	}
	defer inputFile.Close()

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	defer outputFile.Close()

	if _, err := ProcessStream(c, inputFile, outputFile, chunkSize); err != nil {
		return err
	}
	return outputFile.Sync()
}

// ProcessFileAsync runs ProcessFile in a goroutine. Exactly one of the
// channels receives a value before both are closed.
func ProcessFileAsync(c Streamer, inputPath, outputPath string, chunkSize int) (<-chan struct{}, <-chan error) {
	successChan := make(chan struct{}, 1)
	errorChan := make(chan error, 1)

	go func() {
		defer close(successChan)
		defer close(errorChan)

		if err := ProcessFile(c, inputPath, outputPath, chunkSize); err != nil {
			errorChan <- err
			return
		}
		successChan <- struct{}{}
	}()

	return successChan, errorChan
}
