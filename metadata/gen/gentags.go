// +build ignore

// gentags turns tags.txt into the directory table of the metadata package.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"strings"
	"text/template"
)

var kinds = map[string]string{
	"string":    "KindString",
	"int":       "KindInt",
	"ints":      "KindInts",
	"rational":  "KindRational",
	"rationals": "KindRationals",
	"bytes":     "KindBytes",
}

type tag struct {
	ID   uint16
	Name string
	Kind string
}

type directory struct {
	Name    string
	Aliases []string
	Tags    []tag
}

var tmpl = template.Must(template.New("tags").Parse(`// Code generated by gen/gentags.go from tags.txt; DO NOT EDIT.

package metadata

var directorySpecs = []*DirectorySpec{
{{- range .}}
	{
		Name: {{printf "%q" .Name}},
		Aliases: []string{ {{- range $i, $a := .Aliases}}{{if $i}}, {{end}}{{printf "%q" $a}}{{end -}} },
		Tags: []TagSpec{
		{{- range .Tags}}
			{ID: {{printf "0x%04x" .ID}}, Name: {{printf "%q" .Name}}, Kind: {{.Kind}}},
		{{- end}}
		},
	},
{{- end}}
}
`))

func main() {
	in := flag.String("in", "tags.txt", "tag table source")
	out := flag.String("out", "tags_gen.go", "generated go file")
	flag.Parse()

	f, err := os.Open(*in)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	dirs, err := parse(f)
	if err != nil {
		log.Fatal(err)
	}

	buf := &bytes.Buffer{}
	if err := tmpl.Execute(buf, dirs); err != nil {
		log.Fatal(err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatalf("generated code does not parse: %v\n%s", err, buf.Bytes())
	}

	if err := ioutil.WriteFile(*out, src, 0644); err != nil {
		log.Fatal(err)
	}
}

func parse(f *os.File) ([]*directory, error) {
	var dirs []*directory
	var current *directory

	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			names := strings.Split(strings.Trim(line, "[]"), "|")
			current = &directory{Name: strings.TrimSpace(names[0])}
			for _, a := range names[1:] {
				current.Aliases = append(current.Aliases, strings.TrimSpace(a))
			}
			dirs = append(dirs, current)
			continue
		}

		if current == nil {
			return nil, fmt.Errorf("line %d: tag outside of a directory", n)
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want <id> <NAME> <kind>, got %q", n, line)
		}

		id, err := strconv.ParseUint(fields[0], 0, 16)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad tag id: %v", n, err)
		}

		kind, ok := kinds[fields[2]]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown kind %q", n, fields[2])
		}

		current.Tags = append(current.Tags, tag{ID: uint16(id), Name: humanize(fields[1]), Kind: kind})
	}

	return dirs, sc.Err()
}

// humanize turns LATITUDE_REF into "Latitude Ref".
func humanize(capname string) string {
	words := strings.Split(capname, "_")
	for i, w := range words {
		w = strings.ToLower(w)
		if w != "" {
			w = strings.ToUpper(w[:1]) + w[1:]
		}
		words[i] = w
	}

	return strings.Join(words, " ")
}
