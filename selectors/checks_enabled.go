//go:build !no_dev_checks

package selectors

// devChecksEnabled gates the advisory diagnostics. Build with the
// no_dev_checks tag to branch them out entirely in production binaries.
const devChecksEnabled = true
