// Package mmap exposes dataset files as read-only memory regions.
//
// Regions are mapped for a single front-to-back scan and the kernel is told
// so on Unix. Windows maps through CreateFileMapping and skips the hint.
package mmap
