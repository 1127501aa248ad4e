// go-models/versioned.go
package models

// Versioned adds optimistic‑lock helpers. Embed it anonymously.
//
// Version starts at 1 on insert and grows by exactly one on every
// successful save.
type Versioned struct {
	Version int64 `json:"version"`
}

// ----- interface helpers -----
func (v *Versioned) GetVersion() int64  { return v.Version }
func (v *Versioned) SetVersion(n int64) { v.Version = n }
