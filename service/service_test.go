package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"prepmate/interview-api/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// testDB opens a fresh in-memory database. The shared cache keeps every
// pooled connection pointed at the same store.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.User{}, model.PendingOtp{}))

	return db
}

type sentMail struct {
	email string
	code  string
}

// fakeMailer records deliveries, or fails every send when fail is set.
type fakeMailer struct {
	sent []sentMail
	fail error
}

func (m *fakeMailer) Send(email, code string) error {
	if m.fail != nil {
		return m.fail
	}

	m.sent = append(m.sent, sentMail{email: email, code: code})
	return nil
}

func pendingCount(t *testing.T, db *gorm.DB, email string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&model.PendingOtp{}).Where("email = ?", email).Count(&n).Error)
	return n
}

func pendingCode(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()

	var rec model.PendingOtp
	require.NoError(t, db.Where("email = ?", email).First(&rec).Error)
	return rec.Code
}
