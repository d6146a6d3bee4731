package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fabra/internal/domain"
	"fabra/internal/models"
	"fabra/internal/repository"
	"fabra/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Employee{},
		&models.RushOrder{},
		&models.RushOrderMessage{},
		&models.RushOrderMessageRead{},
		&models.Notification{},
	))
	return db
}

// rushOrderEnv wires the handler onto an in-memory store with a swappable
// caller identity standing in for the auth middleware.
type rushOrderEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	notifSvc *service.NotificationService

	callerID   uint
	callerRole string
}

func newRushOrderEnv(t *testing.T) *rushOrderEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := &rushOrderEnv{db: newHandlerDB(t), callerRole: domain.RoleWorker}

	env.notifSvc = service.NewNotificationService(repository.NewNotificationRepository(env.db), nil, zap.NewNop())
	h := NewRushOrderHandler(
		repository.NewRushOrderRepository(env.db),
		repository.NewEmployeeRepository(env.db),
		service.NewMessageService(repository.NewMessageRepository(env.db), zap.NewNop()),
		env.notifSvc,
		zap.NewNop(),
	)

	env.router = gin.New()
	env.router.Use(func(c *gin.Context) {
		c.Set("employee_id", env.callerID)
		c.Set("email", "test@fabra.local")
		c.Set("role", env.callerRole)
	})
	env.router.POST("/rush-orders", h.Create)
	env.router.GET("/rush-orders/:id/messages", h.ListMessages)
	env.router.POST("/rush-orders/:id/messages", h.PostMessage)
	env.router.PUT("/rush-orders/:id/messages/read", h.MarkMessagesRead)
	env.router.GET("/rush-orders/:id/messages/unread-count", h.UnreadCount)
	return env
}

func (e *rushOrderEnv) addEmployee(t *testing.T, name, role string) uint {
	t.Helper()
	emp := &models.Employee{Name: name, Email: name + "@fabra.local", Role: role}
	require.NoError(t, e.db.Create(emp).Error)
	return emp.ID
}

func (e *rushOrderEnv) addOrder(t *testing.T, createdBy uint) uint {
	t.Helper()
	o := &models.RushOrder{Title: "bent spindle", Status: domain.RushOrderStatusOpen, CreatedByID: createdBy}
	require.NoError(t, e.db.Create(o).Error)
	return o.ID
}

func (e *rushOrderEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestCreateRushOrderFansOutToManagersAndAdmins(t *testing.T) {
	env := newRushOrderEnv(t)
	worker := env.addEmployee(t, "worker", domain.RoleWorker)
	manager := env.addEmployee(t, "manager", domain.RoleManager)
	admin := env.addEmployee(t, "boss", domain.RoleAdmin)
	env.callerID = worker

	w := env.do(http.MethodPost, "/rush-orders", gin.H{"title": "press 2 jammed", "details": "needs a new belt"})
	require.Equal(t, http.StatusCreated, w.Code)

	for _, id := range []uint{manager, admin} {
		list, err := env.notifSvc.GetForEmployee(id)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
	list, err := env.notifSvc.GetForEmployee(worker)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateRushOrderRejectsBadDeadline(t *testing.T) {
	env := newRushOrderEnv(t)
	env.callerID = env.addEmployee(t, "worker", domain.RoleWorker)

	w := env.do(http.MethodPost, "/rush-orders", gin.H{"title": "x", "deadline": "tomorrow"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostMessageRejectsWhitespace(t *testing.T) {
	env := newRushOrderEnv(t)
	author := env.addEmployee(t, "ada", domain.RoleWorker)
	orderID := env.addOrder(t, author)
	env.callerID = author

	for _, msg := range []string{"   ", "\n\t"} {
		w := env.do(http.MethodPost, "/rush-orders/1/messages", gin.H{"message": msg})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	var count int64
	require.NoError(t, env.db.Model(&models.RushOrderMessage{}).Where("rush_order_id = ?", orderID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPostMessageTrimsAndReturnsAuthorFields(t *testing.T) {
	env := newRushOrderEnv(t)
	author := env.addEmployee(t, "grace", domain.RoleManager)
	orderID := env.addOrder(t, author)
	env.callerID = author

	w := env.do(http.MethodPost, "/rush-orders/1/messages", gin.H{"message": "  spindle replaced  "})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message repository.ThreadMessage `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "spindle replaced", resp.Message.Message)
	assert.Equal(t, orderID, resp.Message.RushOrderID)
	require.NotNil(t, resp.Message.EmployeeName)
	assert.Equal(t, "grace", *resp.Message.EmployeeName)
}

func TestMessagesOnMissingOrderReturn404(t *testing.T) {
	env := newRushOrderEnv(t)
	env.callerID = env.addEmployee(t, "ada", domain.RoleWorker)

	w := env.do(http.MethodGet, "/rush-orders/999/messages", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPost, "/rush-orders/999/messages", gin.H{"message": "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnreadCountLifecycle(t *testing.T) {
	env := newRushOrderEnv(t)
	author := env.addEmployee(t, "ada", domain.RoleWorker)
	reader := env.addEmployee(t, "bo", domain.RoleWorker)
	env.addOrder(t, author)
	require.NoError(t, env.db.Create(&models.RushOrderMessage{
		RushOrderID: 1, EmployeeID: author, Message: "hi",
	}).Error)
	env.callerID = reader

	w := env.do(http.MethodGet, "/rush-orders/1/messages/unread-count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Unread int64 `json:"unread"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Unread)

	w = env.do(http.MethodPut, "/rush-orders/1/messages/read", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/rush-orders/1/messages/unread-count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(0), resp.Unread)
}
