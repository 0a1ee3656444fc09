// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build freebsd || linux || netbsd || openbsd || solaris || dragonfly

package clipboard

import "github.com/atotto/clipboard"

func usePrimary(on bool) { clipboard.Primary = on }
