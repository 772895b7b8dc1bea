// Package metadata exposes the EXIF and JPEG header blocks of an image as
// named directories of typed tags.
package metadata

import "sync"

// Reader holds the blocks found in one image. Directories are built on first
// use and cached. A Reader is safe for concurrent use.
type Reader struct {
	blocks blocks

	mu    sync.Mutex
	cache map[string]*Directory
}

// Read scans an encoded image for metadata. Images without any metadata give
// a Reader whose directories all report Exists() == false.
func Read(b []byte) *Reader {
	return &Reader{
		blocks: readBlocks(b),
		cache:  make(map[string]*Directory),
	}
}

// Directory returns the directory called name (case insensitive, aliases
// such as "IFD0" or "Gps" included). Unknown names are an ErrArgument.
func (r *Reader) Directory(name string) (*Directory, error) {
	spec, err := LookupDirectory(name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.cache[spec.Name]; ok {
		return d, nil
	}

	d := &Directory{spec: spec, values: r.blocks[spec.Name]}
	r.cache[spec.Name] = d

	return d, nil
}

// Directories lists the canonical names of the directories present, in table order.
func (r *Reader) Directories() []string {
	var names []string
	for _, s := range directorySpecs {
		if _, ok := r.blocks[s.Name]; ok {
			names = append(names, s.Name)
		}
	}

	return names
}

func (r *Reader) value(dir, tag string) Value {
	d, err := r.Directory(dir)
	if err != nil {
		return Value{}
	}

	v, err := d.Get(tag)
	if err != nil {
		return Value{}
	}

	return v
}

func (r *Reader) Make() string {
	return r.value(DirIFD0, "Make").String()
}

func (r *Reader) Model() string {
	return r.value(DirIFD0, "Model").String()
}

// Orientation is the EXIF orientation, or 0 when the image has none.
func (r *Reader) Orientation() int {
	n, err := r.value(DirIFD0, "Orientation").Int()
	if err != nil {
		return 0
	}

	return n
}

// Width prefers the JPEG frame header, then the Exif sub-IFD, then IFD0.
// It is 0 when no block records a width.
func (r *Reader) Width() int {
	return r.firstInt(
		[2]string{DirJpeg, "Image Width"},
		[2]string{DirSubIFD, "Exif Image Width"},
		[2]string{DirIFD0, "Image Width"},
	)
}

// Height follows the same precedence as Width.
func (r *Reader) Height() int {
	return r.firstInt(
		[2]string{DirJpeg, "Image Height"},
		[2]string{DirSubIFD, "Exif Image Height"},
		[2]string{DirIFD0, "Image Height"},
	)
}

func (r *Reader) firstInt(lookups ...[2]string) int {
	for _, l := range lookups {
		if n, err := r.value(l[0], l[1]).Int(); err == nil {
			return n
		}
	}

	return 0
}
