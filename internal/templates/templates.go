// Package templates bundles the SME-friendly contract templates served
// by the templates endpoints.
package templates

import (
	_ "embed"
)

//go:embed service_agreement_sme.txt
var serviceAgreementSME string

// Info describes one bundled template.
type Info struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Filename string `json:"filename"`
}

// Catalog lists the bundled templates.
func Catalog() []Info {
	return []Info{
		{
			ID:       "service_agreement_sme",
			Name:     "Service Agreement (SME-Friendly)",
			Filename: "service_agreement_sme.txt",
		},
	}
}

// Content returns a template's text by id.
func Content(id string) (string, bool) {
	switch id {
	case "service_agreement_sme":
		return serviceAgreementSME, true
	}
	return "", false
}
