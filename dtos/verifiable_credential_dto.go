package dtos

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	W3CCredentialsContext = "https://www.w3.org/2018/credentials/v1"
	Ed25519SuiteContext   = "https://w3id.org/security/suites/ed25519-2020/v1"
	DPPContextPath        = "/contexts/dpp/v1"

	CredentialTypeVerifiable          = "VerifiableCredential"
	CredentialTypeDPP                 = "DigitalProductPassport"
	CredentialTypeAgriculturalQuality = "AgriculturalQualityCertificate"

	IssuerTypeQAAgency         = "QualityAssuranceAgency"
	SubjectTypeAgricultural    = "AgriculturalProduct"
	ProofPurposeAssertion      = "assertionMethod"
	DefaultCertificationNumber = "QA-CERT-001"
)

type VerifiableCredential struct {
	Context           []string          `json:"@context"`
	ID                string            `json:"id"`
	Type              []string          `json:"type"`
	Issuer            CredentialIssuer  `json:"issuer"`
	IssuanceDate      time.Time         `json:"issuanceDate"`
	ExpirationDate    time.Time         `json:"expirationDate"`
	CredentialSubject CredentialSubject `json:"credentialSubject"`
	Proof             ProofBlock        `json:"proof"`
}

type CredentialIssuer struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Type                string `json:"type"`
	CertificationNumber string `json:"certificationNumber"`
}

type CredentialSubject struct {
	ID                   string               `json:"id"`
	Type                 string               `json:"type"`
	Product              SubjectProduct       `json:"product"`
	Origin               SubjectOrigin        `json:"origin"`
	Destination          SubjectDestination   `json:"destination"`
	QualityCertification QualityCertification `json:"qualityCertification"`
}

type SubjectProduct struct {
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Variety       string     `json:"variety"`
	Quantity      string     `json:"quantity"`
	BatchID       string     `json:"batchId"`
	HarvestDate   *time.Time `json:"harvestDate"`
	PackagingDate *time.Time `json:"packagingDate"`
}

type SubjectOrigin struct {
	Country        string             `json:"country"`
	State          string             `json:"state"`
	District       string             `json:"district"`
	FarmLocation   string             `json:"farmLocation"`
	GeoCoordinates *GeoCoordinatesDTO `json:"geoCoordinates"`
}

type SubjectDestination struct {
	Country      string `json:"country"`
	Port         string `json:"port"`
	ImporterName string `json:"importerName"`
}

type QualityCertification struct {
	InspectionID      string                   `json:"inspectionId"`
	InspectionDate    time.Time                `json:"inspectionDate"`
	InspectionType    string                   `json:"inspectionType"`
	Grade             string                   `json:"grade"`
	OverallResult     string                   `json:"overallResult"`
	QualityParameters CertifiedQualityFindings `json:"qualityParameters"`
	Compliance        Compliance               `json:"compliance"`
}

type CertifiedQualityFindings struct {
	MoistureContent  string `json:"moistureContent"`
	ForeignMatter    string `json:"foreignMatter"`
	PesticideStatus  string `json:"pesticideStatus"`
	AflatoxinLevel   string `json:"aflatoxinLevel"`
	OrganicCertified bool   `json:"organicCertified"`
}

type ProofKind string

const (
	ProofKindPlaceholder ProofKind = "Sha256HashPlaceholder2024"
	ProofKindEd25519     ProofKind = "Ed25519Signature2020"
)

// Proof is the closed set of proof variants a credential can carry.
type Proof interface {
	Kind() ProofKind
	// Value returns the encoded proof value, empty if none is attached
	Value() string
	isProof()
}

type proofFields struct {
	Created            time.Time `json:"created"`
	VerificationMethod string    `json:"verificationMethod"`
	ProofPurpose       string    `json:"proofPurpose"`
	ProofValue         string    `json:"proofValue"`
}

// PlaceholderProof is a hash over credential id, batch id and issuance time.
// It provides tamper evidence only and is not a signature.
type PlaceholderProof struct {
	proofFields
}

func NewPlaceholderProof(created time.Time, verificationMethod, value string) PlaceholderProof {
	return PlaceholderProof{proofFields{
		Created:            created,
		VerificationMethod: verificationMethod,
		ProofPurpose:       ProofPurposeAssertion,
		ProofValue:         value,
	}}
}

func (p PlaceholderProof) Kind() ProofKind { return ProofKindPlaceholder }
func (p PlaceholderProof) Value() string   { return p.ProofValue }
func (PlaceholderProof) isProof()          {}

// Ed25519Proof is an Ed25519Signature2020 proof produced by a real signing backend.
type Ed25519Proof struct {
	proofFields
}

func NewEd25519Proof(created time.Time, verificationMethod, value string) Ed25519Proof {
	return Ed25519Proof{proofFields{
		Created:            created,
		VerificationMethod: verificationMethod,
		ProofPurpose:       ProofPurposeAssertion,
		ProofValue:         value,
	}}
}

func (p Ed25519Proof) Kind() ProofKind { return ProofKindEd25519 }
func (p Ed25519Proof) Value() string   { return p.ProofValue }
func (Ed25519Proof) isProof()          {}

// ProofBlock is the serialized form of a Proof. The "type" key selects the variant.
type ProofBlock struct {
	Proof Proof
}

type proofWire struct {
	Type ProofKind `json:"type"`
	proofFields
}

func (b ProofBlock) MarshalJSON() ([]byte, error) {
	if b.Proof == nil {
		return []byte("null"), nil
	}
	wire := proofWire{Type: b.Proof.Kind()}
	switch p := b.Proof.(type) {
	case PlaceholderProof:
		wire.proofFields = p.proofFields
	case Ed25519Proof:
		wire.proofFields = p.proofFields
	default:
		return nil, fmt.Errorf("unknown proof variant %T", b.Proof)
	}
	return json.Marshal(wire)
}

func (b *ProofBlock) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		b.Proof = nil
		return nil
	}
	var wire proofWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Type {
	case ProofKindPlaceholder:
		b.Proof = PlaceholderProof{wire.proofFields}
	case ProofKindEd25519:
		b.Proof = Ed25519Proof{wire.proofFields}
	default:
		return fmt.Errorf("unknown proof type %q", wire.Type)
	}
	return nil
}
