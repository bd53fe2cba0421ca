// Package testhelper implements utility routines required for writing unit tests.
// The testhelper should only be used in unit tests.
package testhelper

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"sync"
	"time"
)

var (
	rsaCA     RSACertTuple
	rsaLeaf   RSACertTuple
	ecdsaCA   ECCertTuple
	ecdsaLeaf ECCertTuple
	ed25519CA Ed25519CertTuple
)

var setupCertificatesOnce sync.Once

type RSACertTuple struct {
	Cert       *x509.Certificate
	PrivateKey *rsa.PrivateKey
}

type ECCertTuple struct {
	Cert       *x509.Certificate
	PrivateKey *ecdsa.PrivateKey
}

type Ed25519CertTuple struct {
	Cert       *x509.Certificate
	PrivateKey ed25519.PrivateKey
}

// GetRSACACertificate returns a CA certificate with an RSA key, allowed to
// sign CRLs
func GetRSACACertificate() RSACertTuple {
	setupCertificates()
	return rsaCA
}

// GetRSALeafCertificate returns a leaf certificate issued by the RSA CA
func GetRSALeafCertificate() RSACertTuple {
	setupCertificates()
	return rsaLeaf
}

// GetECCACertificate returns a CA certificate with an EC key, allowed to
// sign CRLs
func GetECCACertificate() ECCertTuple {
	setupCertificates()
	return ecdsaCA
}

// GetECLeafCertificate returns a leaf certificate issued by the EC CA
func GetECLeafCertificate() ECCertTuple {
	setupCertificates()
	return ecdsaLeaf
}

// GetEd25519CACertificate returns a CA certificate with an Ed25519 key,
// allowed to sign CRLs
func GetEd25519CACertificate() Ed25519CertTuple {
	setupCertificates()
	return ed25519CA
}

func setupCertificates() {
	setupCertificatesOnce.Do(func() {
		rsaCA = getRSACertTuple("Test RSA CA", nil)
		rsaLeaf = getRSACertTuple("Test RSA Leaf Cert", &rsaCA)
		ecdsaCA = getECCertTuple("Test EC CA", nil)
		ecdsaLeaf = getECCertTuple("Test EC Leaf Cert", &ecdsaCA)
		ed25519CA = getEd25519CertTuple("Test Ed25519 CA")
	})
}

func getRSACertTuple(cn string, issuer *RSACertTuple) RSACertTuple {
	pk, _ := rsa.GenerateKey(rand.Reader, 3072)
	template := getCertTemplate(issuer == nil, cn)

	var certBytes []byte
	if issuer != nil {
		certBytes, _ = x509.CreateCertificate(rand.Reader, template, issuer.Cert, &pk.PublicKey, issuer.PrivateKey)
	} else {
		certBytes, _ = x509.CreateCertificate(rand.Reader, template, template, &pk.PublicKey, pk)
	}

	cert, _ := x509.ParseCertificate(certBytes)
	return RSACertTuple{
		Cert:       cert,
		PrivateKey: pk,
	}
}

func getECCertTuple(cn string, issuer *ECCertTuple) ECCertTuple {
	pk, _ := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	template := getCertTemplate(issuer == nil, cn)

	var certBytes []byte
	if issuer != nil {
		certBytes, _ = x509.CreateCertificate(rand.Reader, template, issuer.Cert, &pk.PublicKey, issuer.PrivateKey)
	} else {
		certBytes, _ = x509.CreateCertificate(rand.Reader, template, template, &pk.PublicKey, pk)
	}

	cert, _ := x509.ParseCertificate(certBytes)
	return ECCertTuple{
		Cert:       cert,
		PrivateKey: pk,
	}
}

func getEd25519CertTuple(cn string) Ed25519CertTuple {
	pub, priv, _ := ed25519.GenerateKey(rand.Reader)
	template := getCertTemplate(true, cn)
	certBytes, _ := x509.CreateCertificate(rand.Reader, template, template, pub, priv)

	cert, _ := x509.ParseCertificate(certBytes)
	return Ed25519CertTuple{
		Cert:       cert,
		PrivateKey: priv,
	}
}

func getCertTemplate(isCA bool, cn string) *x509.Certificate {
	template := &x509.Certificate{
		Subject: pkix.Name{
			Organization: []string{"Notary"},
			Country:      []string{"US"},
			Province:     []string{"WA"},
			Locality:     []string{"Seattle"},
			CommonName:   cn,
		},
		NotBefore: time.Now(),
		KeyUsage:  x509.KeyUsageDigitalSignature,
	}

	if isCA {
		template.SerialNumber = big.NewInt(1)
		template.NotAfter = time.Now().AddDate(0, 1, 0)
		template.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
		template.BasicConstraintsValid = true
		template.MaxPathLen = 1
		template.IsCA = true
		template.SubjectKeyId = []byte{1, 2, 3, 4}
	} else {
		template.SerialNumber, _ = rand.Int(rand.Reader, big.NewInt(1<<62))
		template.NotAfter = time.Now().AddDate(0, 0, 1)
	}

	return template
}
