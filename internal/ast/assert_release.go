//go:build !frond_debug

package ast

const debugAssertions = false
