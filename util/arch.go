package util

// PointerSize is the size in bytes of a pointer on the compilation target.
// Only 64-bit targets are supported for now.
const PointerSize = 8
