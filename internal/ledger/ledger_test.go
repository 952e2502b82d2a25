package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"covid-results-server/internal/models"
)

func newLocalTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := models.OpenLocalDB(filepath.Join(t.TempDir(), "database.db"))
	require.NoError(t, err)
	return db
}

func TestRecordRequestSetsTimestamp(t *testing.T) {
	db := newLocalTestDB(t)
	ledger := NewSQLNotificationLedger(db)

	require.NoError(t, ledger.RecordRequest("100", "867-5309", "en"))

	var stored models.NotificationRequest
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "100", stored.SpecimenID)
	assert.Equal(t, "867-5309", stored.NotificationTelephone)
	assert.Equal(t, "en", stored.PreferredLanguage)
	assert.WithinDuration(t, time.Now(), stored.RequestTime, time.Minute)
}

func TestListActiveWindowAndDedup(t *testing.T) {
	db := newLocalTestDB(t)
	ledger := NewSQLNotificationLedger(db)

	// One stale request outside the 7-day window.
	stale := models.NotificationRequest{
		RequestTime:           time.Now().Add(-8 * 24 * time.Hour),
		SpecimenID:            "100",
		NotificationTelephone: "867-5309",
		PreferredLanguage:     "en",
	}
	require.NoError(t, db.Create(&stale).Error)

	// Duplicate requests within the window collapse to one candidate.
	require.NoError(t, ledger.RecordRequest("200", "555-0100", "fr"))
	require.NoError(t, ledger.RecordRequest("200", "555-0100", "fr"))
	require.NoError(t, ledger.RecordRequest("300", "555-0100", "fr"))

	pending, err := ledger.ListActive()
	require.NoError(t, err)
	assert.ElementsMatch(t, []PendingNotification{
		{SpecimenID: "200", NotificationTelephone: "555-0100", PreferredLanguage: "fr"},
		{SpecimenID: "300", NotificationTelephone: "555-0100", PreferredLanguage: "fr"},
	}, pending)
}

func TestPurgeExpiredNotifications(t *testing.T) {
	db := newLocalTestDB(t)
	ledger := NewSQLNotificationLedger(db)

	expired := models.NotificationRequest{
		RequestTime:           time.Now().Add(-366 * 24 * time.Hour),
		SpecimenID:            "100",
		NotificationTelephone: "867-5309",
		PreferredLanguage:     "en",
	}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, ledger.RecordRequest("200", "555-0100", "fr"))

	require.NoError(t, ledger.PurgeExpired())

	var remaining []models.NotificationRequest
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "200", remaining[0].SpecimenID)
}

func TestRecordViewAndListRecentViews(t *testing.T) {
	db := newLocalTestDB(t)
	ledger := NewSQLViewLedger(db)

	old := models.ViewedResult{
		ViewedTime: time.Now().Add(-8 * 24 * time.Hour),
		SpecimenID: "100",
	}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, ledger.RecordView("200"))

	views, err := ledger.ListRecentViews()
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "200", views[0].SpecimenID)
	assert.WithinDuration(t, time.Now(), views[0].ViewedTime, time.Minute)
}

func TestPurgeExpiredViews(t *testing.T) {
	db := newLocalTestDB(t)
	ledger := NewSQLViewLedger(db)

	expired := models.ViewedResult{
		ViewedTime: time.Now().Add(-366 * 24 * time.Hour),
		SpecimenID: "100",
	}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, ledger.RecordView("200"))

	require.NoError(t, ledger.PurgeExpired())

	var remaining []models.ViewedResult
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "200", remaining[0].SpecimenID)
}
