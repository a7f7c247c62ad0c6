// Package certerr holds the error taxonomy shared by the certificate
// template, rendering and issuance packages.
package certerr

import "errors"

var (
	// ErrInvalidTemplate is returned when uploaded bytes are not a PDF with at least one page.
	ErrInvalidTemplate = errors.New("invalid certificate template")
	// ErrInvalidFont is returned when uploaded bytes are not an embeddable TrueType/OpenType font.
	ErrInvalidFont = errors.New("invalid font")
	// ErrInvalidSettings is returned for out-of-range layout settings.
	ErrInvalidSettings = errors.New("invalid template settings")
	// ErrNotFound means no active template has been uploaded yet.
	ErrNotFound = errors.New("no template configured yet")
	// ErrParticipantNotFound is an item-level batch failure.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrCertificateNotFound means the participant has no issued certificate.
	ErrCertificateNotFound = errors.New("certificate not issued")
	// ErrRender wraps any failure to produce a PDF from the current template.
	ErrRender = errors.New("render failed")
)
