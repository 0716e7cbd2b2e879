// Package detector probes the host CPU and produces the normalized
// signature consumed by the matching engine.
//
// Probing is layered: the primary probe reads the richest source the
// platform offers (/proc/cpuinfo on Linux, sysctl on macOS) and an
// in-process register probe serves as a fallback when no OS interface is
// readable. Every probe emits the same Signature value; platform quirks
// such as ARM implementer codes or darwin flag spellings are translated
// through the dataset's conversion tables before the signature leaves
// this package.
package detector
