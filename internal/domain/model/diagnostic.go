package model

// RecordDiagnostic describes a menu document that could not be decoded.
// The record is left out of the catalog; the rest of the fetch proceeds.
//
// @Description Menu document rejected during catalog refresh
type RecordDiagnostic struct {
	ID     string `json:"id" example:"65a1f0c2e4b0a1b2c3d4e5f6"`
	Field  string `json:"field" example:"Price"`
	Reason string `json:"reason" example:"expected number, got string"`
} // @name RecordDiagnostic
