//go:build !spantrace

package span

// Enabled is false in the default build; Span.Start/End become no-ops
// that the compiler removes entirely. Build with -tags spantrace to
// turn instrumentation on.
const Enabled = false
