//go:build headless

package main

func init() {
	compiledFeatures = append(compiledFeatures, "display:headless")
}

func newEbitenOutput() (DisplayOutput, error) {
	return NewHeadlessOutput(), nil
}
