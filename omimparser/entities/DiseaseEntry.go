package entities

// DiseaseEntry is one joined OMIM/MedGen disease record. The MIM number is
// carried as both _id and omim_id; medgen_concept_id is unique across a build.
type DiseaseEntry struct {
	ID                string `json:"_id"`
	OmimID            string `json:"omim_id"`
	OmimDisease       string `json:"omim_disease"`
	MedgenConceptID   string `json:"medgen_concept_id"`
	MedgenDiseaseInfo string `json:"medgen_disease_info"`
}
