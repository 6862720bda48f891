//go:build !matdebug

package homology

import "github.com/mars-project/medax/simplicial"

// assertOrdering is a no-op outside matdebug builds; see assert_debug.go.
func (red *Reduction) assertOrdering(c *simplicial.Complex) error {
	return nil
}
