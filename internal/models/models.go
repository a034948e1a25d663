package models

import "time"

// ConvertRequest is the body of every conversion endpoint. Either Lines or
// Text may be set; Text is split on line breaks. When both are present the
// lines of Text are appended after Lines.
type ConvertRequest struct {
	Lines []string `json:"lines,omitempty" validate:"omitempty,max=10000"`
	Text  string   `json:"text,omitempty" validate:"max=1048576"`
}

type SanitizeResult struct {
	Results   []string  `json:"results"`
	Count     int       `json:"count"`
	Cached    bool      `json:"cached"`
	Timestamp time.Time `json:"timestamp"`
}

type Outcome struct {
	Input    string `json:"input"`
	Output   string `json:"output"`
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

type UnsanitizeResult struct {
	Accepted  []string  `json:"accepted"`
	Rejected  []string  `json:"rejected"`
	Outcomes  []Outcome `json:"outcomes"`
	Cached    bool      `json:"cached"`
	Timestamp time.Time `json:"timestamp"`
}

type DomainsResult struct {
	Domains   []string  `json:"domains"`
	Count     int       `json:"count"`
	Cached    bool      `json:"cached"`
	Timestamp time.Time `json:"timestamp"`
}
