/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the archctl command-line interface.
//
// # Commands
//
// detect - Label the host CPU:
//
//	archctl detect [--format yaml|json|table] [--output FILE]
//
// Probes the host, matches the detected signature against the built-in
// microarchitecture dataset, and prints the most specific label.
//
// compare - Order two microarchitectures:
//
//	archctl compare skylake x86_64_v3
//
// Answers whether the first target is an ancestor, descendant, equal to,
// or incomparable with the second.
//
// flags - Resolve compiler optimization flags:
//
//	archctl flags --target zen3 --compiler gcc --compiler-version 11.2
//
// Prints the best -march/-mcpu flags the given compiler release supports
// for the target, generalizing along the ancestor path when the exact
// target is newer than the compiler.
//
// list - Enumerate known targets:
//
//	archctl list [--family x86_64] [--format table]
//
// serve - Expose the dataset over HTTP:
//
//	archctl serve --port 8080
package cli
