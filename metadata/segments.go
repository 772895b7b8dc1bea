package metadata

import (
	"bytes"
	"io"

	"github.com/denismitr/voodoo/codec"
	"github.com/denismitr/voodoo/media"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

const (
	tagExifPointer    = 0x8769
	tagGPSPointer     = 0x8825
	tagInteropPointer = 0xA005

	tagJpegDataPrecision = 0x0000
	tagJpegImageHeight   = 0x0001
	tagJpegImageWidth    = 0x0003
	tagJpegComponents    = 0x0005
)

// blocks maps a canonical directory name to the raw tag values found for it.
type blocks map[string]map[uint16]*Raw

// readBlocks pulls every metadata block it can find out of an encoded image.
// A stream without metadata gives an empty set, not an error.
func readBlocks(b []byte) blocks {
	out := make(blocks)

	if cfg, err := codec.DecodeConfig(b); err == nil && cfg.Format == media.JPEG {
		out[DirJpeg] = map[uint16]*Raw{
			// the decoder only accepts 8 bit baseline and progressive streams
			tagJpegDataPrecision: intRaw(8),
			tagJpegImageHeight:   intRaw(cfg.Height),
			tagJpegImageWidth:    intRaw(cfg.Width),
			tagJpegComponents:    intRaw(cfg.Components),
		}
	}

	x, err := exif.Decode(bytes.NewReader(b))
	if x == nil || x.Tiff == nil || len(x.Tiff.Dirs) == 0 {
		return out
	}

	// sub-IFD failures leave the rest usable
	if err != nil && exif.IsCriticalError(err) {
		return out
	}

	ifd0 := x.Tiff.Dirs[0]
	out[DirIFD0] = loadDir(ifd0)

	if len(x.Tiff.Dirs) > 1 {
		out[DirThumbnail] = loadDir(x.Tiff.Dirs[1])
	}

	if sub := subDir(x, ifd0, tagExifPointer); sub != nil {
		out[DirSubIFD] = loadDir(sub)

		if interop := subDir(x, sub, tagInteropPointer); interop != nil {
			out[DirInteroperability] = loadDir(interop)
		}
	}

	if gps := subDir(x, ifd0, tagGPSPointer); gps != nil {
		out[DirGPS] = loadDir(gps)
	}

	return out
}

func subDir(x *exif.Exif, parent *tiff.Dir, pointer uint16) *tiff.Dir {
	for _, t := range parent.Tags {
		if t.Id != pointer {
			continue
		}

		offset, err := t.Int64(0)
		if err != nil || offset <= 0 || offset >= int64(len(x.Raw)) {
			return nil
		}

		r := bytes.NewReader(x.Raw)
		if _, err := r.Seek(offset, io.SeekStart); err != nil {
			return nil
		}

		d, _, err := tiff.DecodeDir(r, x.Tiff.Order)
		if err != nil {
			return nil
		}

		return d
	}

	return nil
}

func loadDir(d *tiff.Dir) map[uint16]*Raw {
	values := make(map[uint16]*Raw, len(d.Tags))
	for _, t := range d.Tags {
		values[t.Id] = toRaw(t)
	}

	return values
}

func toRaw(t *tiff.Tag) *Raw {
	r := &Raw{Type: uint16(t.Type), Count: int(t.Count), Bytes: t.Val}

	switch t.Format() {
	case tiff.IntVal:
		for i := 0; i < int(t.Count); i++ {
			v, err := t.Int64(i)
			if err != nil {
				break
			}
			r.Ints = append(r.Ints, v)
		}
	case tiff.RatVal:
		for i := 0; i < int(t.Count); i++ {
			num, den, err := t.Rat2(i)
			if err != nil {
				break
			}
			r.Rats = append(r.Rats, Rational{Num: num, Den: den})
		}
	case tiff.FloatVal:
		for i := 0; i < int(t.Count); i++ {
			v, err := t.Float(i)
			if err != nil {
				break
			}
			r.Floats = append(r.Floats, v)
		}
	case tiff.StringVal:
		r.Str, _ = t.StringVal()
	}

	return r
}

func intRaw(v int) *Raw {
	return &Raw{Type: uint16(tiff.DTLong), Count: 1, Ints: []int64{int64(v)}}
}
