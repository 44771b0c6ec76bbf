// SPDX-License-Identifier: EPL-2.0

// Package formats registers every bundled decoder in an audio.Registry.
package formats
