// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package unwrap turns must-succeed errors into panics.
//
// It is for failures that indicate a programming mistake rather than a
// runtime condition, like embedded data that must parse.
package unwrap

// Value returns val, panicking if err is not nil.
func Value[T any](val T, err error) T {
	NoError(err)
	return val
}

// NoError panics if err is not nil.
func NoError(err error) {
	if err != nil {
		panic(err)
	}
}
