// Package romon decodes MikroTik RoMON frames from captured bytes.
//
// Ownership boundary:
// - bounded cursor read primitives
// - frame header, discovery and transport payload decoding
// - structured frame model and line-oriented trace rendering
// - frame encoding for fixtures and tooling
//
// Every read is bounded by the captured length handed to Decode. The frame
// length carried in the header is reported but never used as a bound.
package romon
