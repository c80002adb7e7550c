// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"bytes"
	"io"
	"os"
)

// StdoutOutputForFunc runs f and returns everything it wrote to os.Stdout.
func StdoutOutputForFunc(f func()) string {
	r, w, _ := os.Pipe()

	old := os.Stdout
	os.Stdout = w

	f()

	_ = w.Close()
	os.Stdout = old

	var out bytes.Buffer

	_, _ = io.Copy(&out, r)

	return out.String()
}

// StderrOutputForFunc runs f and returns everything it wrote to os.Stderr.
func StderrOutputForFunc(f func()) string {
	r, w, _ := os.Pipe()

	old := os.Stderr
	os.Stderr = w

	f()

	_ = w.Close()
	os.Stderr = old

	var out bytes.Buffer

	_, _ = io.Copy(&out, r)

	return out.String()
}
