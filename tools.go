//go:build tools

package dalmatinerql

import (
	_ "golang.org/x/tools/cmd/stringer"
)
