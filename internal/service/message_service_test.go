package service

import (
	"testing"
	"time"

	"fabra/internal/domain"
	"fabra/internal/models"
	"fabra/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type messageFixture struct {
	db   *gorm.DB
	repo *repository.MessageRepository
	svc  *MessageService
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	db := newTestDB(t)
	repo := repository.NewMessageRepository(db)
	return &messageFixture{db: db, repo: repo, svc: NewMessageService(repo, zap.NewNop())}
}

func (f *messageFixture) addEmployee(t *testing.T, name, role string) uint {
	t.Helper()
	e := &models.Employee{Name: name, Email: name + "@fabra.local", Role: role}
	require.NoError(t, f.db.Create(e).Error)
	return e.ID
}

func (f *messageFixture) addMessage(t *testing.T, orderID, employeeID uint, text string, at time.Time) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.RushOrderMessage{
		RushOrderID: orderID,
		EmployeeID:  employeeID,
		Message:     text,
		CreatedAt:   at,
		UpdatedAt:   at,
	}).Error)
}

func TestThreadOrderedByCreationAscending(t *testing.T) {
	f := newMessageFixture(t)
	author := f.addEmployee(t, "ada", domain.RoleWorker)
	base := time.Now().Add(-time.Hour)
	// Insert out of order on purpose.
	f.addMessage(t, 1, author, "second", base.Add(2*time.Minute))
	f.addMessage(t, 1, author, "first", base.Add(time.Minute))
	f.addMessage(t, 1, author, "third", base.Add(3*time.Minute))

	list, err := f.svc.Thread(1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Message)
	assert.Equal(t, "second", list[1].Message)
	assert.Equal(t, "third", list[2].Message)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt))
	}
}

func TestAppendReturnsJoinedAuthorFields(t *testing.T) {
	f := newMessageFixture(t)
	author := f.addEmployee(t, "grace", domain.RoleManager)

	msg, err := f.svc.Append(1, author, "press 2 is down")
	require.NoError(t, err)
	require.NotNil(t, msg.EmployeeName)
	assert.Equal(t, "grace", *msg.EmployeeName)
	require.NotNil(t, msg.EmployeeRole)
	assert.Equal(t, domain.RoleManager, *msg.EmployeeRole)
	assert.Equal(t, "press 2 is down", msg.Message)
}

func TestDeletedAuthorStillListedWithNilName(t *testing.T) {
	f := newMessageFixture(t)
	author := f.addEmployee(t, "gone", domain.RoleWorker)
	f.addMessage(t, 1, author, "still here", time.Now().Add(-time.Minute))

	require.NoError(t, f.db.Delete(&models.Employee{}, author).Error)

	list, err := f.svc.Thread(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "still here", list[0].Message)
	assert.Nil(t, list[0].EmployeeName)
	assert.Nil(t, list[0].EmployeeRole)
}

func TestMarkThreadReadUpsertsSingleReceipt(t *testing.T) {
	f := newMessageFixture(t)
	require.NoError(t, f.svc.MarkThreadRead(1, 5))

	first, err := f.repo.Receipt(1, 5)
	require.NoError(t, err)

	require.NoError(t, f.svc.MarkThreadRead(1, 5))

	var count int64
	require.NoError(t, f.db.Model(&models.RushOrderMessageRead{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	second, err := f.repo.Receipt(1, 5)
	require.NoError(t, err)
	assert.False(t, second.LastReadAt.Before(first.LastReadAt))
}

func TestUnreadCountWithoutReceiptEqualsThreadSize(t *testing.T) {
	f := newMessageFixture(t)
	author := f.addEmployee(t, "ada", domain.RoleWorker)
	base := time.Now().Add(-time.Hour)
	f.addMessage(t, 1, author, "one", base)
	f.addMessage(t, 1, author, "two", base.Add(time.Minute))

	assert.Equal(t, int64(2), f.svc.UnreadCount(1, 42))
}

func TestUnreadCountZeroAfterMarkRead(t *testing.T) {
	f := newMessageFixture(t)
	author := f.addEmployee(t, "ada", domain.RoleWorker)
	f.addMessage(t, 1, author, "one", time.Now().Add(-time.Minute))

	require.NoError(t, f.svc.MarkThreadRead(1, 42))
	assert.Equal(t, int64(0), f.svc.UnreadCount(1, 42))
}

func TestUnreadCountTracksReceiptAcrossNewMessages(t *testing.T) {
	f := newMessageFixture(t)
	a := f.addEmployee(t, "a", domain.RoleWorker)
	b := f.addEmployee(t, "b", domain.RoleWorker)

	base := time.Now().Add(-time.Hour)
	f.addMessage(t, 1, a, "hi", base)
	f.addMessage(t, 1, a, "ping", base.Add(time.Minute))

	assert.Equal(t, int64(2), f.svc.UnreadCount(1, b))

	require.NoError(t, f.svc.MarkThreadRead(1, b))

	f.addMessage(t, 1, a, "pong", time.Now().Add(time.Second))
	assert.Equal(t, int64(1), f.svc.UnreadCount(1, b))
}

func TestUnreadCountDegradesToZeroOnStoreFailure(t *testing.T) {
	f := newMessageFixture(t)
	author := f.addEmployee(t, "ada", domain.RoleWorker)
	f.addMessage(t, 1, author, "one", time.Now().Add(-time.Minute))

	// Simulate a broken store: the receipt table vanishes. The badge must
	// degrade to zero rather than surface an error.
	require.NoError(t, f.db.Migrator().DropTable(&models.RushOrderMessageRead{}))
	assert.Equal(t, int64(0), f.svc.UnreadCount(1, 42))
}
