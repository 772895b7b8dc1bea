package metadata

import (
	"sort"
	"strings"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/pkg/errors"
)

//go:generate go run gen/gentags.go -in tags.txt -out tags_gen.go

// Canonical directory names.
const (
	DirIFD0             = "Exif IFD0"
	DirSubIFD           = "Exif SubIFD"
	DirGPS              = "GPS"
	DirThumbnail        = "Exif Thumbnail"
	DirInteroperability = "Interoperability"
	DirJpeg             = "Jpeg"
)

type TagSpec struct {
	ID   uint16
	Name string
	Kind Kind
}

// DirectorySpec binds a directory name to the tags it may carry.
type DirectorySpec struct {
	Name    string
	Aliases []string
	Tags    []TagSpec
}

func (s *DirectorySpec) tag(name string) (TagSpec, bool) {
	for _, t := range s.Tags {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}

	return TagSpec{}, false
}

func (s *DirectorySpec) tagByID(id uint16) (TagSpec, bool) {
	for _, t := range s.Tags {
		if t.ID == id {
			return t, true
		}
	}

	return TagSpec{}, false
}

var specsByName = indexSpecs(directorySpecs)

func indexSpecs(specs []*DirectorySpec) map[string]*DirectorySpec {
	idx := make(map[string]*DirectorySpec)
	for _, s := range specs {
		idx[strings.ToLower(s.Name)] = s
		for _, a := range s.Aliases {
			idx[strings.ToLower(a)] = s
		}
	}

	return idx
}

// LookupDirectory resolves a directory name or alias, ignoring case.
func LookupDirectory(name string) (*DirectorySpec, error) {
	s, ok := specsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Wrapf(errs.ErrArgument, "unknown metadata directory %q", name)
	}

	return s, nil
}

// Directory is one named group of tags read from an image.
type Directory struct {
	spec   *DirectorySpec
	values map[uint16]*Raw
}

func (d *Directory) Name() string {
	return d.spec.Name
}

// Exists reports whether the image carried this directory at all.
func (d *Directory) Exists() bool {
	return d.values != nil
}

// Get looks a tag up by name. A name the directory does not define is an
// ErrArgument; a defined tag the image lacks gives a Value that does not exist.
func (d *Directory) Get(tag string) (Value, error) {
	t, ok := d.spec.tag(strings.TrimSpace(tag))
	if !ok {
		return Value{}, errors.Wrapf(errs.ErrArgument, "unknown tag %q in directory %s", tag, d.spec.Name)
	}

	return Value{name: t.Name, kind: t.Kind, raw: d.values[t.ID]}, nil
}

// Tags lists the names of the known tags present, in tag id order.
func (d *Directory) Tags() []string {
	ids := make([]int, 0, len(d.values))
	for id := range d.values {
		if _, ok := d.spec.tagByID(id); ok {
			ids = append(ids, int(id))
		}
	}

	sort.Ints(ids)

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		t, _ := d.spec.tagByID(uint16(id))
		names = append(names, t.Name)
	}

	return names
}
