// SPDX-License-Identifier: EPL-2.0

package filter

import "errors"

var (
	ErrNilSource         = errors.New("filter chain needs a source")
	ErrUnsupportedLayout = errors.New("cannot convert between these channel layouts")
)
