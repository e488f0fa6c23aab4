// Package runtime implements the boxed value representation that code
// emitted by the lumenc compiler links against.
//
// This package contains:
//   - Value: the reference-counted, tagged payload cell
//   - Array and Dict: the container payload types
//   - ForwardRef: the indirection cell for recursive bindings
//   - Box and Unbox: the generic construction and reinterpretation helpers
//   - The foreign export table populated by generated FFI shims
package runtime
