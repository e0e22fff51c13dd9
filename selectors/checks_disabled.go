//go:build no_dev_checks

package selectors

const devChecksEnabled = false
