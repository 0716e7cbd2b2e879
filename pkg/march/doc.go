/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package march implements the microarchitecture knowledge graph and its
// query surface.
//
// The graph is a DAG of named microarchitectures per CPU family. Each node
// carries a vendor tag, the feature set required to claim the node, a
// generation ordinal, and a per-compiler table of optimization flags.
// A graph is built once from a validated record set and is immutable
// afterwards, so all queries are safe for concurrent use without locking.
//
// Three consumers operate on the graph:
//
//   - FindBest maps a detected CPU signature to the most specific
//     compatible node (feature-set driven, never model-number driven).
//   - Compare answers partial-order questions between two nodes:
//     Equal, AncestorOf, DescendantOf or Incomparable.
//   - ResolveFlags maps a node, a compiler and a compiler version to the
//     optimization flag string, walking generalization along ancestor
//     edges when the exact node is not supported by that compiler version.
//
// The built-in dataset is embedded at build time and loaded on first use
// via Load. Callers that need a custom dataset can decode their own
// records and call Build directly.
package march
