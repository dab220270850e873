//go:build !envicomplex

package envi

// Complex sample support is compiled out by default; build with the
// envicomplex tag to enable the Float32C and Float64C encodings.
const complexEnabled = false
