package dtos

type ParticipantDTO struct {
	ID                  string `json:"id" yaml:"id" validate:"required"`
	Name                string `json:"name" yaml:"name" validate:"required"`
	Organization        string `json:"organization" yaml:"organization"`
	Role                Role   `json:"role" yaml:"role" validate:"required,oneof=exporter qa_agency admin"`
	DID                 string `json:"did,omitempty" yaml:"did"`
	CertificationNumber string `json:"certificationNumber,omitempty" yaml:"certificationNumber"`
	Active              *bool  `json:"active,omitempty" yaml:"active"`
}

type ParticipantSeed struct {
	Participants []ParticipantDTO `yaml:"participants" validate:"dive"`
}
