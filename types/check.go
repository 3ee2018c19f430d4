package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the outcome label of a single check.
type Status string

const (
	StatusOK                = Status("OK")
	StatusMissing           = Status("Missing")
	StatusTooLongOrMissing  = Status("Too Long or Missing")
	StatusMultipleOrMissing = Status("Multiple or Missing")
	StatusMissingAlt        = Status("Missing Alt Attributes")
	StatusError             = Status("Error")
)

// ErrorStatus returns the status recorded for a sub-resource that answered
// with a non-200 code, e.g. "Error 404".
func ErrorStatus(code int) Status {
	return Status(fmt.Sprintf("%s %d", StatusError, code))
}

// OK reports whether the check passed.
func (s Status) OK() bool {
	return s == StatusOK
}

// IsError reports whether the check could not be evaluated (network
// failure or non-200 sub-resource).
func (s Status) IsError() bool {
	return s == StatusError || strings.HasPrefix(string(s), string(StatusError)+" ")
}

// CheckResult - Outcome of one check. Optional fields are nil when they do
// not apply to the check and are omitted from the encoded output.
type CheckResult struct {
	Status     Status   `json:"status"`
	Content    *string  `json:"content,omitempty"`
	Length     *int     `json:"length,omitempty"`
	Count      *int     `json:"count,omitempty"`
	Total      *int     `json:"total,omitempty"`
	MissingAlt *int     `json:"missing_alt,omitempty"`
	Details    []string `json:"details,omitempty"`
	Allowed    *bool    `json:"allowed,omitempty"`
	Sitemaps   []string `json:"sitemaps,omitempty"`
}

// Field is one printable attribute of a CheckResult.
type Field struct {
	Name  string
	Value string
}

// Fields lists the populated attributes of r in a stable order, status first.
func (r CheckResult) Fields() []Field {
	fields := []Field{{Name: "status", Value: string(r.Status)}}
	if r.Content != nil {
		fields = append(fields, Field{Name: "content", Value: *r.Content})
	}
	if r.Length != nil {
		fields = append(fields, Field{Name: "length", Value: strconv.Itoa(*r.Length)})
	}
	if r.Count != nil {
		fields = append(fields, Field{Name: "count", Value: strconv.Itoa(*r.Count)})
	}
	if r.Total != nil {
		fields = append(fields, Field{Name: "total", Value: strconv.Itoa(*r.Total)})
	}
	if r.MissingAlt != nil {
		fields = append(fields, Field{Name: "missing_alt", Value: strconv.Itoa(*r.MissingAlt)})
	}
	if len(r.Details) > 0 {
		fields = append(fields, Field{Name: "details", Value: strings.Join(r.Details, ", ")})
	}
	if r.Allowed != nil {
		fields = append(fields, Field{Name: "allowed", Value: strconv.FormatBool(*r.Allowed)})
	}
	if len(r.Sitemaps) > 0 {
		fields = append(fields, Field{Name: "sitemaps", Value: strings.Join(r.Sitemaps, ", ")})
	}
	return fields
}

// String - Pointer helper for optional string fields
func String(s string) *string { return &s }

// Int - Pointer helper for optional int fields
func Int(n int) *int { return &n }

// Bool - Pointer helper for optional bool fields
func Bool(b bool) *bool { return &b }
