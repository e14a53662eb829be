// Package mocks provides hand-written fakes for the store and service
// interfaces. Function fields override behavior per test; when left nil
// the fakes fall back to a simple in-memory implementation.
package mocks
