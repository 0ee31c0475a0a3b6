package taskmanager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrTooManyTasks - достигнут лимит активных задач.
	ErrTooManyTasks = errors.New("превышено максимальное количество активных задач")
	// ErrShuttingDown - менеджер останавливается и новые задачи не принимает.
	ErrShuttingDown = errors.New("менеджер задач останавливается")
)

// ITaskManager определяет интерфейс для управления задачами
type ITaskManager interface {
	SubmitTask(ctx context.Context, taskFunc TaskFunc, params interface{}, callbacks ...TaskCallback) (uuid.UUID, error)
	CleanupTasks(age time.Duration)
}

// NewManager создает новый экземпляр TaskManager с настройками по умолчанию
func NewManager(logger *zap.Logger) *TaskManager {
	return New(Config{MaxTasks: 10}, logger)
}

// Task представляет асинхронную задачу
type Task struct {
	ID        uuid.UUID
	Status    TaskStatus
	Message   string
	Result    interface{}
	Err       error
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskStatus представляет статус задачи
type TaskStatus string

// Возможные статусы задач
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

func (s TaskStatus) active() bool {
	return s == TaskStatusPending || s == TaskStatusRunning
}

// TaskFunc представляет функцию, выполняемую в задаче
type TaskFunc func(ctx context.Context, params interface{}) (interface{}, error)

// TaskCallback вызывается в горутине задачи после того, как задача получила
// финальный статус. Получает копию задачи.
type TaskCallback func(task Task)

// Config содержит конфигурацию для TaskManager
type Config struct {
	MaxTasks int
}

// TaskManager запускает задачи в отдельных горутинах.
// Задачи не отменяются: контекст задачи не зависит от контекста вызывающего.
type TaskManager struct {
	tasks    map[uuid.UUID]*Task
	mu       sync.RWMutex
	maxTasks int
	closing  bool
	wg       sync.WaitGroup
	logger   *zap.Logger
}

// New создает новый экземпляр TaskManager
func New(cfg Config, logger *zap.Logger) *TaskManager {
	maxTasks := cfg.MaxTasks
	if maxTasks <= 0 {
		maxTasks = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TaskManager{
		tasks:    make(map[uuid.UUID]*Task),
		maxTasks: maxTasks,
		logger:   logger.Named("TaskManager"),
	}
}

// SubmitTask создает и запускает новую задачу
func (tm *TaskManager) SubmitTask(ctx context.Context, taskFunc TaskFunc, params interface{}, callbacks ...TaskCallback) (uuid.UUID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.closing {
		return uuid.Nil, ErrShuttingDown
	}

	if tm.activeTasksLocked() >= tm.maxTasks {
		return uuid.Nil, ErrTooManyTasks
	}

	taskID := uuid.New()
	now := time.Now()
	task := &Task{
		ID:        taskID,
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	tm.tasks[taskID] = task

	// Значения контекста (request id и т.п.) сохраняем, отмену - нет
	taskCtx := context.WithoutCancel(ctx)

	tm.wg.Add(1)
	go func() {
		defer tm.wg.Done()
		final := tm.runTask(taskCtx, task, taskFunc, params)
		for _, callback := range callbacks {
			callback(final)
		}
	}()

	return taskID, nil
}

// runTask выполняет задачу, обновляет ее статус и возвращает финальный снимок
func (tm *TaskManager) runTask(ctx context.Context, task *Task, taskFunc TaskFunc, params interface{}) Task {
	tm.updateTaskStatus(task, TaskStatusRunning, "Задача запущена", nil, nil)

	result, err := taskFunc(ctx, params)
	if err != nil {
		tm.logger.Warn("Task failed", zap.String("taskID", task.ID.String()), zap.Error(err))
		return tm.updateTaskStatus(task, TaskStatusFailed, fmt.Sprintf("Ошибка: %v", err), nil, err)
	}
	return tm.updateTaskStatus(task, TaskStatusCompleted, "Задача успешно выполнена", result, nil)
}

// updateTaskStatus обновляет статус задачи и возвращает ее копию
func (tm *TaskManager) updateTaskStatus(task *Task, status TaskStatus, message string, result interface{}, err error) Task {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	task.Status = status
	task.Message = message
	task.UpdatedAt = time.Now()
	task.Err = err
	if result != nil {
		task.Result = result
	}

	tm.logger.Debug("Task status updated",
		zap.String("taskID", task.ID.String()),
		zap.String("newStatus", string(task.Status)),
		zap.String("message", task.Message))

	return *task
}

// activeTasksLocked считает задачи в статусах pending/running. Вызывать под tm.mu.
func (tm *TaskManager) activeTasksLocked() int {
	n := 0
	for _, task := range tm.tasks {
		if task.Status.active() {
			n++
		}
	}
	return n
}

// CleanupTasks удаляет завершенные задачи, которые не обновлялись age и дольше.
// CleanupTasks(0) удаляет все завершенные задачи.
func (tm *TaskManager) CleanupTasks(age time.Duration) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	now := time.Now()
	for id, task := range tm.tasks {
		if !task.Status.active() && now.Sub(task.UpdatedAt) >= age {
			delete(tm.tasks, id)
		}
	}
}

// Shutdown перестает принимать задачи и ожидает завершения запущенных с таймаутом
func (tm *TaskManager) Shutdown(ctx context.Context) error {
	tm.mu.Lock()
	tm.closing = true
	tm.mu.Unlock()

	done := make(chan struct{})
	go func() {
		tm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.New("таймаут при ожидании завершения задач")
	}
}
