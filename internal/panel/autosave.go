package panel

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
)

// saveTimeout 单次后台保存的超时
const saveTimeout = 10 * time.Second

// SaveFunc 持久化某用户的偏好
type SaveFunc func(ctx context.Context, username string, prefs dto.UserPreferencesResponse) error

// AutoSaver 按用户去抖的偏好自动保存
// 每次 Schedule 重置该用户的计时器，到期后以最新状态保存一次
type AutoSaver struct {
	delay  time.Duration
	save   SaveFunc
	logger *zap.Logger

	mu      sync.Mutex
	seq     uint64
	pending map[string]*pendingSave
	stopped bool
}

type pendingSave struct {
	prefs dto.UserPreferencesResponse
	timer *time.Timer
	seq   uint64
}

// NewAutoSaver 创建 AutoSaver
func NewAutoSaver(delay time.Duration, save SaveFunc, logger *zap.Logger) *AutoSaver {
	return &AutoSaver{
		delay:   delay,
		save:    save,
		logger:  logger,
		pending: make(map[string]*pendingSave),
	}
}

// Schedule 记录最新偏好并（重新）启动计时器；Stop 之后调用无效
func (a *AutoSaver) Schedule(username string, prefs dto.UserPreferencesResponse) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	if p, ok := a.pending[username]; ok && p.timer != nil {
		p.timer.Stop()
	}

	a.seq++
	seq := a.seq
	p := &pendingSave{prefs: ClonePreferences(prefs), seq: seq}
	p.timer = time.AfterFunc(a.delay, func() { a.fire(username, seq) })
	a.pending[username] = p
}

// Pending 返回尚未落库的偏好
func (a *AutoSaver) Pending(username string) (dto.UserPreferencesResponse, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.pending[username]
	if !ok {
		return dto.UserPreferencesResponse{}, false
	}
	return ClonePreferences(p.prefs), true
}

// Flush 立即保存全部待保存偏好
func (a *AutoSaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	batch := make(map[string]*pendingSave, len(a.pending))
	for username, p := range a.pending {
		p.timer.Stop()
		batch[username] = p
	}
	a.mu.Unlock()

	var errs []error
	for username, p := range batch {
		if err := a.save(ctx, username, p.prefs); err != nil {
			a.logger.Error("偏好保存失败", zap.String("username", username), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		a.clear(username, p.seq)
	}
	return errors.Join(errs...)
}

// Stop 取消全部计时器并丢弃未保存状态
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	for username, p := range a.pending {
		p.timer.Stop()
		delete(a.pending, username)
	}
}

func (a *AutoSaver) fire(username string, seq uint64) {
	a.mu.Lock()
	p, ok := a.pending[username]
	if !ok || p.seq != seq || a.stopped {
		a.mu.Unlock()
		return
	}
	prefs := p.prefs
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := a.save(ctx, username, prefs); err != nil {
		// 保留待保存状态，下次 Schedule 或 Flush 时重试
		a.logger.Warn("偏好自动保存失败", zap.String("username", username), zap.Error(err))
		return
	}
	a.clear(username, seq)
}

// clear 仅在期间没有新的 Schedule 时移除待保存状态
func (a *AutoSaver) clear(username string, seq uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.pending[username]; ok && p.seq == seq {
		delete(a.pending, username)
	}
}
