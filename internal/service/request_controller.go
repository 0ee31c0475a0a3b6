package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"steam-analysis/internal/client"
	"steam-analysis/internal/domain"
	"steam-analysis/pkg/taskmanager"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StateUpdate - снимок, который получают слушатели. State и Display
// собраны под одной блокировкой и относятся к одной версии.
type StateUpdate struct {
	Version uint64
	State   domain.RequestState
	Display DisplayModel
}

// StateListener вызывается после каждого перехода состояния и выбора игры.
// Вызовы идут последовательно и по возрастанию Version; устаревшие снимки
// не доставляются. Слушатель не должен вызывать Submit или SelectGame.
type StateListener func(update StateUpdate)

// RequestController владеет жизненным циклом запроса анализа
// (idle -> loading -> success|error) и выбором игры в отзывах.
// В полете не больше одного запроса: Submit во время loading ничего не делает.
type RequestController struct {
	analysisClient client.AnalysisServiceClient
	tasks          taskmanager.ITaskManager
	logger         *zap.Logger
	now            func() time.Time

	mu         sync.RWMutex
	state      domain.RequestState
	view       *ReviewFilterView
	version    uint64
	settled    chan struct{} // закрывается, когда текущий запрос завершился
	listeners  map[int]StateListener
	nextListen int

	notifyMu     sync.Mutex
	lastNotified uint64
}

// NewRequestController создает контроллер в состоянии idle.
func NewRequestController(analysisClient client.AnalysisServiceClient, tasks taskmanager.ITaskManager, logger *zap.Logger) *RequestController {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &RequestController{
		analysisClient: analysisClient,
		tasks:          tasks,
		logger:         logger.Named("RequestController"),
		now:            time.Now,
		view:           NewReviewFilterView(nil),
		listeners:      make(map[int]StateListener),
	}
	c.state = domain.RequestState{Status: domain.StatusIdle, UpdatedAt: c.now()}
	return c
}

// Submit запускает анализ описания.
// Пустое описание -> domain.ErrEmptyInput, запрос в полете -> domain.ErrRequestInFlight;
// в обоих случаях состояние не меняется. Иначе состояние становится loading,
// прошлый результат/ошибка сбрасываются, запрос уходит в фоне, метод сразу возвращает nil.
func (c *RequestController) Submit(ctx context.Context, description string) error {
	if strings.TrimSpace(description) == "" {
		submissionsTotal.WithLabelValues("empty_input").Inc()
		return domain.ErrEmptyInput
	}

	c.mu.Lock()
	if c.state.IsLoading() {
		c.mu.Unlock()
		submissionsTotal.WithLabelValues("in_flight").Inc()
		c.logger.Debug("Submit ignored, request already in flight", zap.String("request_id", c.state.RequestID.String()))
		return domain.ErrRequestInFlight
	}

	requestID := uuid.New()
	startedAt := c.now()
	c.state = domain.RequestState{
		Status:    domain.StatusLoading,
		Prompt:    description,
		RequestID: requestID,
		UpdatedAt: startedAt,
	}
	c.view = NewReviewFilterView(nil)
	c.settled = make(chan struct{})
	loading := c.advanceLocked()
	c.mu.Unlock()

	submissionsTotal.WithLabelValues("accepted").Inc()
	c.logger.Info("Analysis request submitted", zap.String("request_id", requestID.String()))
	c.notify(loading)

	analyze := func(taskCtx context.Context, _ interface{}) (interface{}, error) {
		return c.analysisClient.Analyze(taskCtx, requestID, description)
	}
	// Состояние меняется в коллбэке, когда задача уже не считается активной,
	// иначе следующий Submit мог бы упереться в лимит менеджера задач
	onDone := func(task taskmanager.Task) {
		// Завершенная задача больше не нужна менеджеру
		c.tasks.CleanupTasks(0)

		if task.Err != nil {
			c.fail(requestID, startedAt, task.Err)
			return
		}
		raw, ok := task.Result.(*domain.RawAnalysisResult)
		if !ok || raw == nil {
			c.fail(requestID, startedAt, fmt.Errorf("%w: empty analysis result", domain.ErrMalformedResponse))
			return
		}
		result := Augment(*raw)
		c.succeed(requestID, startedAt, &result)
	}

	if _, err := c.tasks.SubmitTask(ctx, analyze, nil, onDone); err != nil {
		c.fail(requestID, startedAt, fmt.Errorf("failed to dispatch analysis request: %w", err))
	}
	return nil
}

// succeed переводит запрос requestID в success.
func (c *RequestController) succeed(requestID uuid.UUID, startedAt time.Time, result *domain.AnalysisResult) {
	c.settle(requestID, startedAt, func(s *domain.RequestState) {
		s.Status = domain.StatusSuccess
		s.Result = result
		c.view = NewReviewFilterView(result)
	})
	c.logger.Info("Analysis request succeeded",
		zap.String("request_id", requestID.String()),
		zap.Float64("unique_score", result.UniqueScore),
		zap.Int("similar_games", len(result.SimilarGames)),
		zap.Int("reviews", len(result.Reviews)))
}

// fail переводит запрос requestID в error. Причина только логируется,
// пользователь видит общее сообщение.
func (c *RequestController) fail(requestID uuid.UUID, startedAt time.Time, cause error) {
	c.settle(requestID, startedAt, func(s *domain.RequestState) {
		s.Status = domain.StatusError
		s.Error = domain.UserFacingErrorMessage
	})
	c.logger.Error("Analysis request failed",
		zap.String("request_id", requestID.String()),
		zap.Bool("malformed_response", errors.Is(cause, domain.ErrMalformedResponse)),
		zap.Error(cause))
}

func (c *RequestController) settle(requestID uuid.UUID, startedAt time.Time, apply func(s *domain.RequestState)) {
	c.mu.Lock()
	if c.state.RequestID != requestID || !c.state.IsLoading() {
		c.mu.Unlock()
		c.logger.Warn("Dropping result of stale request", zap.String("request_id", requestID.String()))
		return
	}
	c.state.Result = nil
	c.state.Error = ""
	apply(&c.state)
	c.state.UpdatedAt = c.now()
	update := c.advanceLocked()
	settled := c.settled
	c.mu.Unlock()

	requestsSettledTotal.WithLabelValues(string(update.State.Status)).Inc()
	requestDuration.Observe(update.State.UpdatedAt.Sub(startedAt).Seconds())
	c.notify(update)
	// Wait отпускаем после слушателей
	close(settled)
}

// State возвращает снимок текущего состояния.
func (c *RequestController) State() domain.RequestState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Wait блокируется, пока текущий запрос не завершится или не истечет ctx.
func (c *RequestController) Wait(ctx context.Context) (domain.RequestState, error) {
	c.mu.RLock()
	settled := c.settled
	c.mu.RUnlock()

	if settled != nil {
		select {
		case <-settled:
		case <-ctx.Done():
			return c.State(), ctx.Err()
		}
	}
	return c.State(), nil
}

// SelectGame выбирает игру по синтетическому ID.
// Неизвестный ID не является ошибкой: выбор просто не даст отзывов.
func (c *RequestController) SelectGame(gameID int) error {
	c.mu.Lock()
	if c.state.Status != domain.StatusSuccess || c.state.Result == nil {
		c.mu.Unlock()
		return domain.ErrNoResult
	}
	game, ok := c.state.Result.GameByID(gameID)
	if !ok {
		game = domain.Game{ID: gameID}
	}
	c.view.SelectGame(game)
	update := c.advanceLocked()
	c.mu.Unlock()

	c.notify(update)
	return nil
}

// Display строит модель для отображения из состояния и выбора.
func (c *RequestController) Display() DisplayModel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.displayLocked()
}

func (c *RequestController) displayLocked() DisplayModel {
	m := BuildDisplay(c.state, c.view)
	m.Version = c.version
	return m
}

// advanceLocked увеличивает версию и снимает состояние. Вызывать под c.mu.
func (c *RequestController) advanceLocked() StateUpdate {
	c.version++
	return StateUpdate{
		Version: c.version,
		State:   c.state,
		Display: c.displayLocked(),
	}
}

// Subscribe регистрирует слушателя. Возвращает функцию отписки.
func (c *RequestController) Subscribe(listener StateListener) func() {
	c.mu.Lock()
	id := c.nextListen
	c.nextListen++
	c.listeners[id] = listener
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// notify доставляет снимок слушателям. Снимки разных горутин могут прийти
// не по порядку, поэтому версии не новее уже доставленной отбрасываются.
func (c *RequestController) notify(update StateUpdate) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	if update.Version <= c.lastNotified {
		c.logger.Debug("Dropping stale state update", zap.Uint64("version", update.Version))
		return
	}
	c.lastNotified = update.Version

	c.mu.RLock()
	listeners := make([]StateListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.RUnlock()

	for _, l := range listeners {
		l(update)
	}
}
