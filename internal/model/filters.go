// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// =============================================================================
// QUERY FILTERS
// =============================================================================

// FilterSet narrows retrieval for the next query. Every field is
// optional free text; blank fields are omitted from the query payload
// entirely rather than sent as empty strings.
type FilterSet struct {
	DocumentType string `json:"documentType,omitempty"`
	Product      string `json:"product,omitempty"`
	Model        string `json:"model,omitempty"`
}

// Normalize returns a copy with surrounding whitespace trimmed from
// every field, so a value of spaces counts as blank.
func (f FilterSet) Normalize() FilterSet {
	return FilterSet{
		DocumentType: strings.TrimSpace(f.DocumentType),
		Product:      strings.TrimSpace(f.Product),
		Model:        strings.TrimSpace(f.Model),
	}
}

// IsZero reports whether no filter is set after normalization.
func (f FilterSet) IsZero() bool {
	n := f.Normalize()
	return n.DocumentType == "" && n.Product == "" && n.Model == ""
}

// Summary returns a short human-readable description for the status bar,
// or "" when no filter is active.
func (f FilterSet) Summary() string {
	n := f.Normalize()
	var parts []string
	if n.DocumentType != "" {
		parts = append(parts, "type:"+n.DocumentType)
	}
	if n.Product != "" {
		parts = append(parts, "product:"+n.Product)
	}
	if n.Model != "" {
		parts = append(parts, "model:"+n.Model)
	}
	return strings.Join(parts, " ")
}
