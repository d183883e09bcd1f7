package roster

import (
	"sync"
	"testing"
	"time"
)

// ── 周锁测试 ──

func TestWeekLocker_MutualExclusion(t *testing.T) {
	locker := NewWeekLocker()
	weekStart := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	const workers = 8
	counter := 0
	wg := sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locker.Lock(weekStart)
			defer locker.Unlock(weekStart)
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("同一周的锁应串行化并发操作: 期望=%d 实际=%d", workers, counter)
	}
}

func TestWeekLocker_ReleasesEntryAfterUnlock(t *testing.T) {
	locker := NewWeekLocker()

	for i := 0; i < 10; i++ {
		weekStart := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*i)
		locker.Lock(weekStart)
		locker.Unlock(weekStart)
	}

	locker.mu.Lock()
	remaining := len(locker.locks)
	locker.mu.Unlock()

	if remaining != 0 {
		t.Errorf("释放后周锁表应为空，实际还有 %d 项", remaining)
	}
}

func TestWeekLocker_DifferentWeeksIndependent(t *testing.T) {
	locker := NewWeekLocker()
	week1 := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	week2 := week1.AddDate(0, 0, 7)

	locker.Lock(week1)
	done := make(chan struct{})
	go func() {
		locker.Lock(week2)
		locker.Unlock(week2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("不同周的锁不应互相阻塞")
	}
	locker.Unlock(week1)
}