package roster

import (
	"sync"
	"time"
)

type weekLock struct {
	mu   sync.Mutex
	refs int
}

// WeekLocker 对同一周的排班生成做串行化，
// 防止两次并发的生成在整体替换班表时互相覆盖出部分结果。
// 每周的锁按引用计数管理，最后一个持有者释放后即从表中删除，
// 长期运行时表的大小不会随生成过的周数增长
type WeekLocker struct {
	mu    sync.Mutex
	locks map[string]*weekLock
}

func NewWeekLocker() *WeekLocker {
	return &WeekLocker{
		locks: make(map[string]*weekLock),
	}
}

func weekKey(weekStart time.Time) string {
	return weekStart.UTC().Format("2006-01-02")
}

func (l *WeekLocker) Lock(weekStart time.Time) {
	key := weekKey(weekStart)

	l.mu.Lock()
	lock, exists := l.locks[key]
	if !exists {
		lock = &weekLock{}
		l.locks[key] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
}

func (l *WeekLocker) Unlock(weekStart time.Time) {
	key := weekKey(weekStart)

	l.mu.Lock()
	lock, exists := l.locks[key]
	if !exists {
		l.mu.Unlock()
		panic("roster: 解锁了一个未加锁的周")
	}
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()

	lock.mu.Unlock()
}
