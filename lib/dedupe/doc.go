// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package dedupe strips duplicate object files from fat static
// libraries built for Apple simulator targets.
//
// A link-time workaround in the simulator build leaves several copies
// of the same object in each architecture slice. The copies share a
// name except for an incremented final character ("stdafx.o",
// "stdafy.o", "stdafz.o"). [FindDuplicates] identifies those copies
// from a member listing; [Deduplicator.Run] splits a fat library into
// per-architecture slices, removes the copies from each slice, and
// reassembles the library in place.
//
// Libraries whose path does not contain the simulator marker are left
// untouched. A run is strictly sequential and owns its scratch
// directory; concurrent runs against the same library or scratch root
// are not safe.
package dedupe
