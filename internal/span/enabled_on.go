//go:build spantrace

package span

// Enabled is true when the repo is built with -tags spantrace.
const Enabled = true
