package renderer

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"time"

	digitorus_pdf "github.com/digitorus/pdf"
	"github.com/digitorus/pdfsign/sign"
)

// SignerConfig selects the PEM certificate and RSA key used to sign issued
// certificates. Signing is skipped when Enabled is false.
type SignerConfig struct {
	Enabled  bool
	CertPath string
	KeyPath  string
}

type CertificateSigner struct {
	certificate *x509.Certificate
	privateKey  *rsa.PrivateKey
	enabled     bool
}

// NewDisabledSigner returns a signer that passes documents through.
func NewDisabledSigner() *CertificateSigner {
	return &CertificateSigner{enabled: false}
}

func NewCertificateSigner(cfg SignerConfig) (*CertificateSigner, error) {
	if !cfg.Enabled {
		slog.Info("PDF signing disabled in configuration")
		return NewDisabledSigner(), nil
	}

	if cfg.CertPath == "" || cfg.KeyPath == "" {
		return nil, fmt.Errorf("signing enabled but certificate or key path not configured")
	}

	certPEM, err := os.ReadFile(cfg.CertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file %s: %w", cfg.CertPath, err)
	}

	keyPEM, err := os.ReadFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file %s: %w", cfg.KeyPath, err)
	}

	return NewCertificateSignerFromPEM(certPEM, keyPEM)
}

// NewCertificateSignerFromPEM builds an enabled signer from PEM blocks.
// The key may be PKCS1 or PKCS8 encoded but must be RSA.
func NewCertificateSignerFromPEM(certPEM []byte, keyPEM []byte) (*CertificateSigner, error) {
	certBlock, _ := pem.Decode(certPEM)
	if certBlock == nil {
		return nil, fmt.Errorf("failed to decode certificate PEM")
	}

	certificate, err := x509.ParseCertificate(certBlock.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}

	keyBlock, _ := pem.Decode(keyPEM)
	if keyBlock == nil {
		return nil, fmt.Errorf("failed to decode private key PEM")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(keyBlock.Bytes)
	if err != nil {
		key, pkcs8Err := x509.ParsePKCS8PrivateKey(keyBlock.Bytes)
		if pkcs8Err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", pkcs8Err)
		}
		var ok bool
		privateKey, ok = key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("private key is not RSA format")
		}
	}

	slog.Info("Certificate signer initialized",
		"cert_subject", certificate.Subject.String(),
		"cert_expiry", certificate.NotAfter)

	return &CertificateSigner{
		certificate: certificate,
		privateKey:  privateKey,
		enabled:     true,
	}, nil
}

// SignPDF signs pdfBytes. On any signing failure the unsigned document is
// returned with signed=false so issuance can still proceed.
func (s *CertificateSigner) SignPDF(pdfBytes []byte, participantID int64) (out []byte, signed bool) {
	if !s.enabled || s.privateKey == nil || s.certificate == nil {
		return pdfBytes, false
	}
	if len(pdfBytes) == 0 {
		return pdfBytes, false
	}

	signData := sign.SignData{
		Signature: sign.SignDataSignature{
			Info: sign.SignDataSignatureInfo{
				Name:     "Regional Programming Championship",
				Location: "Championship Portal",
				Reason:   fmt.Sprintf("Participation certificate %d", participantID),
				Date:     time.Now(),
			},
			CertType:   sign.CertificationSignature,
			DocMDPPerm: sign.AllowFillingExistingFormFieldsAndSignaturesPerms,
		},
		Signer:      s.privateKey,
		Certificate: s.certificate,
	}

	var outputBuffer bytes.Buffer
	var signingError error
	func() {
		defer func() {
			if r := recover(); r != nil {
				signingError = fmt.Errorf("panic during signing: %v", r)
			}
		}()

		inputReader := bytes.NewReader(pdfBytes)
		pdfReader, err := digitorus_pdf.NewReader(inputReader, int64(len(pdfBytes)))
		if err != nil {
			signingError = err
			return
		}

		signingError = sign.Sign(inputReader, &outputBuffer, pdfReader, int64(len(pdfBytes)), signData)
	}()

	if signingError != nil || outputBuffer.Len() == 0 {
		slog.Warn("PDF signing failed, keeping unsigned PDF",
			"participant_id", participantID,
			"error", signingError)
		return pdfBytes, false
	}

	return outputBuffer.Bytes(), true
}

func (s *CertificateSigner) IsEnabled() bool {
	return s.enabled
}
