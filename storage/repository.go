package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/medgenio/omim-medgen-api/omimparser/entities"
)

// DiseaseRecord is the SQLite row for one disease entry.
type DiseaseRecord struct {
	bun.BaseModel `bun:"table:diseases,alias:d"`

	ID                int64     `bun:"id,pk,autoincrement"`
	MimNumber         string    `bun:"mim_number,notnull"`
	OmimDisease       string    `bun:"omim_disease"`
	MedgenConceptID   string    `bun:"medgen_concept_id,notnull,unique"`
	MedgenDiseaseInfo string    `bun:"medgen_disease_info"`
	UpdatedAt         time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// CreateSchema creates the diseases table if it does not exist.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*DiseaseRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create diseases table: %w", err)
	}
	return nil
}

// ReplaceAll replaces the persisted disease table with a fresh build in one
// transaction, so readers never see a half-written dataset.
func ReplaceAll(ctx context.Context, db *bun.DB, diseases []entities.DiseaseEntry) error {
	records := make([]*DiseaseRecord, 0, len(diseases))
	now := time.Now()
	for _, disease := range diseases {
		records = append(records, &DiseaseRecord{
			MimNumber:         disease.OmimID,
			OmimDisease:       disease.OmimDisease,
			MedgenConceptID:   disease.MedgenConceptID,
			MedgenDiseaseInfo: disease.MedgenDiseaseInfo,
			UpdatedAt:         now,
		})
	}

	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*DiseaseRecord)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("clear diseases table: %w", err)
		}

		if len(records) == 0 {
			return nil
		}

		if _, err := tx.NewInsert().Model(&records).Exec(ctx); err != nil {
			return fmt.Errorf("insert diseases: %w", err)
		}

		return nil
	})
}

// GetByConceptID fetches one disease row by its MedGen concept id.
func GetByConceptID(ctx context.Context, db *bun.DB, conceptID string) (*DiseaseRecord, error) {
	record := new(DiseaseRecord)
	err := db.NewSelect().
		Model(record).
		Where("medgen_concept_id = ?", conceptID).
		Scan(ctx)

	return record, err
}

// CountDiseases returns the number of persisted disease rows.
func CountDiseases(ctx context.Context, db *bun.DB) (int, error) {
	return db.NewSelect().Model((*DiseaseRecord)(nil)).Count(ctx)
}
