package testutil

import (
	"bytes"
	"encoding/binary"
	"sort"
)

const (
	typeASCII    = 2
	typeShort    = 3
	typeLong     = 4
	typeRational = 5

	exifPointer = 0x8769
	gpsPointer  = 0x8825
)

var order = binary.BigEndian

// Entry is a single IFD entry with its value already serialized big endian.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Value []byte
}

func ASCII(tag uint16, s string) Entry {
	v := append([]byte(s), 0)
	return Entry{Tag: tag, Type: typeASCII, Count: uint32(len(v)), Value: v}
}

func Short(tag uint16, vals ...uint16) Entry {
	v := make([]byte, 2*len(vals))
	for i, x := range vals {
		order.PutUint16(v[2*i:], x)
	}
	return Entry{Tag: tag, Type: typeShort, Count: uint32(len(vals)), Value: v}
}

func Long(tag uint16, vals ...uint32) Entry {
	v := make([]byte, 4*len(vals))
	for i, x := range vals {
		order.PutUint32(v[4*i:], x)
	}
	return Entry{Tag: tag, Type: typeLong, Count: uint32(len(vals)), Value: v}
}

// Rational takes numerator, denominator pairs.
func Rational(tag uint16, pairs ...[2]uint32) Entry {
	v := make([]byte, 8*len(pairs))
	for i, p := range pairs {
		order.PutUint32(v[8*i:], p[0])
		order.PutUint32(v[8*i+4:], p[1])
	}
	return Entry{Tag: tag, Type: typeRational, Count: uint32(len(pairs)), Value: v}
}

// Exif lays out a big endian TIFF structure as found in a JPEG APP1 segment.
type Exif struct {
	IFD0      []Entry
	Thumbnail []Entry
	SubIFD    []Entry
	GPS       []Entry
}

func ifdSize(entries []Entry) int {
	n := 2 + 12*len(entries) + 4
	for _, e := range entries {
		if len(e.Value) > 4 {
			n += len(e.Value) + len(e.Value)%2
		}
	}
	return n
}

func (x Exif) Bytes() []byte {
	ifd0 := append([]Entry{}, x.IFD0...)
	if len(x.SubIFD) > 0 {
		ifd0 = append(ifd0, Long(exifPointer, 0))
	}
	if len(x.GPS) > 0 {
		ifd0 = append(ifd0, Long(gpsPointer, 0))
	}

	offset := 8
	ifd0Off := offset
	offset += ifdSize(ifd0)

	thumbOff := 0
	if len(x.Thumbnail) > 0 {
		thumbOff = offset
		offset += ifdSize(x.Thumbnail)
	}

	subOff := offset
	if len(x.SubIFD) > 0 {
		offset += ifdSize(x.SubIFD)
	}
	gpsOff := offset

	for i := range ifd0 {
		switch ifd0[i].Tag {
		case exifPointer:
			ifd0[i] = Long(exifPointer, uint32(subOff))
		case gpsPointer:
			ifd0[i] = Long(gpsPointer, uint32(gpsOff))
		}
	}

	buf := &bytes.Buffer{}
	buf.WriteString("MM")
	writeU16(buf, 42)
	writeU32(buf, uint32(ifd0Off))

	writeIFD(buf, ifd0Off, ifd0, uint32(thumbOff))
	if len(x.Thumbnail) > 0 {
		writeIFD(buf, thumbOff, x.Thumbnail, 0)
	}
	if len(x.SubIFD) > 0 {
		writeIFD(buf, subOff, x.SubIFD, 0)
	}
	if len(x.GPS) > 0 {
		writeIFD(buf, gpsOff, x.GPS, 0)
	}

	return buf.Bytes()
}

func writeIFD(buf *bytes.Buffer, at int, entries []Entry, next uint32) {
	sorted := append([]Entry{}, entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tag < sorted[j].Tag })

	dataOff := at + 2 + 12*len(sorted) + 4
	var data []byte

	writeU16(buf, uint16(len(sorted)))
	for _, e := range sorted {
		writeU16(buf, e.Tag)
		writeU16(buf, e.Type)
		writeU32(buf, e.Count)

		if len(e.Value) <= 4 {
			v := make([]byte, 4)
			copy(v, e.Value)
			buf.Write(v)
			continue
		}

		writeU32(buf, uint32(dataOff+len(data)))
		data = append(data, e.Value...)
		if len(e.Value)%2 == 1 {
			data = append(data, 0)
		}
	}
	writeU32(buf, next)
	buf.Write(data)
}

func writeU16(buf *bytes.Buffer, v uint16) {
	b := make([]byte, 2)
	order.PutUint16(b, v)
	buf.Write(b)
}

func writeU32(buf *bytes.Buffer, v uint32) {
	b := make([]byte, 4)
	order.PutUint32(b, v)
	buf.Write(b)
}
