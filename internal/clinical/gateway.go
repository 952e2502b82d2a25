package clinical

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"covid-results-server/internal/models"
)

// ErrUnexpectedRowCount is returned by Probe when the sanity query does not
// come back with exactly five rows.
var ErrUnexpectedRowCount = errors.New("unexpected number of test results in database")

// Gateway is the read-only contract against the clinical-records store.
// Connectivity and query failures propagate to the caller unmasked.
type Gateway interface {
	// LatestByIdentity returns the authoritative test record for a normalized
	// identity: most recent collection time, tie-broken by result-entered time
	// with a pending result treated as "now". Returns gorm.ErrRecordNotFound
	// when no record matches.
	LatestByIdentity(hcn, dob, lastName string) (*models.TestRecord, error)

	// ResultBySpecimen returns the most recent matching record's raw result
	// value for a specimen. A nil value means the result is still pending.
	ResultBySpecimen(specimenID string) (*string, error)

	// ResultBySpecimenBefore is the audit variant of ResultBySpecimen: it only
	// considers records whose result was entered at or before the given time.
	ResultBySpecimenBefore(specimenID string, before time.Time) (*string, error)

	// Probe verifies connectivity and existing data for the necessary columns.
	Probe() error
}

// Compile-time check that the gorm implementation satisfies the contract.
var _ Gateway = (*SQLGateway)(nil)

// SQLGateway implements Gateway against the clinical SQL Server database.
type SQLGateway struct {
	DB *gorm.DB
}

// NewSQLGateway creates a new SQLGateway.
func NewSQLGateway(db *gorm.DB) *SQLGateway {
	return &SQLGateway{DB: db}
}

// latest applies the authoritative-record ordering shared by every lookup.
func (g *SQLGateway) latest(tx *gorm.DB) *gorm.DB {
	return tx.
		Order("CollectionDateTime DESC").
		Order("COALESCE(ResultedDateTime, CURRENT_TIMESTAMP) DESC").
		Limit(1)
}

func (g *SQLGateway) LatestByIdentity(hcn, dob, lastName string) (*models.TestRecord, error) {
	var records []models.TestRecord
	err := g.latest(g.DB.
		Where("HCN = ?", hcn).
		Where("DOB = ?", dob).
		Where("LastName = ?", lastName)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &records[0], nil
}

func (g *SQLGateway) ResultBySpecimen(specimenID string) (*string, error) {
	var records []models.TestRecord
	err := g.latest(g.DB.
		Where("SpecimenID = ?", specimenID)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return records[0].Result, nil
}

func (g *SQLGateway) ResultBySpecimenBefore(specimenID string, before time.Time) (*string, error) {
	var records []models.TestRecord
	err := g.latest(g.DB.
		Where("SpecimenID = ?", specimenID).
		Where("ResultedDateTime <= ?", before)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return records[0].Result, nil
}

// Probe selects five records as a fixed sanity check. A database with fewer
// than five rows fails the probe even when it is otherwise healthy.
func (g *SQLGateway) Probe() error {
	var records []models.TestRecord
	if err := g.DB.Limit(5).Find(&records).Error; err != nil {
		return err
	}
	if len(records) != 5 {
		return ErrUnexpectedRowCount
	}
	return nil
}
