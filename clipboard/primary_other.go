// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !(freebsd || linux || netbsd || openbsd || solaris || dragonfly)

package clipboard

// Only X11-style hosts have a primary selection.
func usePrimary(bool) {}
