package trace

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// OSThreads identifies producers by their OS thread id and enumerates the
// live threads of this process from /proc.
type OSThreads struct{}

// Current implements Threads.
func (OSThreads) Current() uint32 { return uint32(syscall.Gettid()) }

// VisitLive implements Threads. It walks /proc/self/task, emitting the
// thread id, the process id, and the thread name from comm. Threads that
// exit mid-walk are simply skipped.
func (OSThreads) VisitLive(emit func(id, arg uint32, name string)) {
	tasks, err := os.ReadDir("/proc/self/task")
	if err != nil {
		return
	}
	pid := uint32(os.Getpid())
	for _, task := range tasks {
		tid, err := strconv.Atoi(task.Name())
		if err != nil {
			continue
		}
		comm, err := os.ReadFile(filepath.Join("/proc/self/task", task.Name(), "comm"))
		if err != nil {
			continue
		}
		emit(uint32(tid), pid, strings.TrimSpace(string(comm)))
	}
}

func defaultThreads() Threads { return OSThreads{} }
