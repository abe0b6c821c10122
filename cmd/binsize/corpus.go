package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type corpusFile struct {
	Orders []Order `yaml:"orders"`
}

// loadCorpus reads orders from a YAML file of the form
//
//	orders:
//	  - id: 1
//	    customer: ada
//	    lines: [{sku: A-100, qty: 2, price: 9.5}]
func loadCorpus(path string) ([]Order, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f corpusFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Orders) == 0 {
		return nil, fmt.Errorf("%s: no orders", path)
	}
	return f.Orders, nil
}
