// Package example demonstrates a compiled Twine catalog: catalog_gen.go
// is the twinec output for translations.ini and is committed so the
// tests double as an end-to-end check of the generated API.
package example

//go:generate go run github.com/IMI-eRnD-Be/twine-go generate
