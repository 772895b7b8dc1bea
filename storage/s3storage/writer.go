package s3storage

import "io"

// sequentialWriterAt lets the s3 downloader write into a plain io.Writer.
// Offsets are ignored, so the downloader must run with Concurrency 1.
type sequentialWriterAt struct {
	w io.Writer
}

func (sw sequentialWriterAt) WriteAt(p []byte, _ int64) (n int, err error) {
	return sw.w.Write(p)
}
