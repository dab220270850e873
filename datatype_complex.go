//go:build envicomplex

package envi

const complexEnabled = true
