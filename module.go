package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const moduleFile = "idk.yaml"

type idkModule struct {
	Package string `yaml:"package"`
	Target  string `yaml:"target"`
	Strict  bool   `yaml:"strict"`
	Sources string `yaml:"sources"`
}

func defaultModule(name string) idkModule {
	return idkModule{
		Package: name,
		Target:  "c",
		Sources: "*.idk",
	}
}

func loadModule(path string) (idkModule, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return idkModule{}, err
	}

	doc := defaultModule("")
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return idkModule{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if doc.Package == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return idkModule{}, err
		}
		doc.Package = filepath.Base(filepath.Dir(abs))
	}
	return doc, nil
}

func (m idkModule) save(path string) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, out, 0o644)
}

func (m idkModule) sourceFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, m.Sources))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files match %s in %s", m.Sources, dir)
	}
	return files, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
