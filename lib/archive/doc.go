// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive wraps the Apple static-library toolchain (lipo, ar,
// libtool) with typed operations on fat and thin archives:
//
//   - [Toolchain.ListArchitectures]: the architecture slices in a fat
//     library ("lipo -info").
//   - [Toolchain.ExtractSlice]: one slice as a thin archive
//     ("lipo -thin").
//   - [Toolchain.ListMembers]: member names of a thin archive
//     ("ar t"), in archive order.
//   - [Toolchain.RemoveMembers]: delete named members ("ar d").
//   - [Toolchain.Assemble]: merge thin archives back into one fat
//     archive ("libtool -static").
//
// All failures, including output that cannot be parsed, are reported
// as [*toolexec.ToolInvocationError].
package archive
